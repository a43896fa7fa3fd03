package melody

// NoTone marks a silent table entry; the buzzer is switched off for that note
const NoTone = 0

// Note frequencies in Hz (equal temperament, A4 = 440 Hz; S = sharp)
const (
	C4  = 262
	C4S = 277
	D4  = 294
	D4S = 311
	E4  = 330
	F4  = 349
	F4S = 370
	G4  = 392
	G4S = 415
	A4  = 440
	A4S = 466
	B4  = 494
	C5  = 523
	C5S = 554
	D5  = 587
	D5S = 622
	E5  = 659
	F5  = 698
	F5S = 740
	G5  = 784
	G5S = 831
	A5  = 880
	A5S = 932
	B5  = 988
	C6  = 1047
	C6S = 1109
	D6  = 1175
	D6S = 1245
	E6  = 1319
	F6  = 1397
	NO  = NoTone
)

// Note lengths in ms
const (
	FN = 2000 // Full note
	HN = 1000 // Half note
	QN = 500  // Quarter note
	EN = 250  // Eighth note
	SN = 125  // Sixteenth note
)

// Rest after a note in ms
const (
	RT = 20 // Regular rest between notes
	ST = 80 // Staccato rest
	HT = 0  // Hold: no rest, flow into the next note
)

var noteNames = map[string]uint16{
	"C4": C4, "C4S": C4S, "D4": D4, "D4S": D4S, "E4": E4, "F4": F4, "F4S": F4S,
	"G4": G4, "G4S": G4S, "A4": A4, "A4S": A4S, "B4": B4,
	"C5": C5, "C5S": C5S, "D5": D5, "D5S": D5S, "E5": E5, "F5": F5, "F5S": F5S,
	"G5": G5, "G5S": G5S, "A5": A5, "A5S": A5S, "B5": B5,
	"C6": C6, "C6S": C6S, "D6": D6, "D6S": D6S, "E6": E6, "F6": F6,
	"NO": NO, "NONE": NO,
}

var lengthNames = map[string]uint16{
	"FN": FN, "HN": HN, "QN": QN, "EN": EN, "SN": SN,
	"RT": RT, "ST": ST, "HT": HT,
}

// LookupNote returns the frequency for a note name such as "A5S" or "NO"
func LookupNote(name string) (uint16, bool) {
	hz, ok := noteNames[name]
	return hz, ok
}

// LookupLength returns the duration for a length name such as "QN" or "RT"
func LookupLength(name string) (uint16, bool) {
	ms, ok := lengthNames[name]
	return ms, ok
}

// Default melody tables
var (
	DefaultTones = []uint16{
		F5, F5, F5, F5, F5, E5, D5, E5, F5, G5, A5, A5, A5, A5, A5, G5,
		F5, G5, A5, A5S, C6, F5, F5, D6, C6, A5S, A5, G5, F5, NO, NO,
	}
	DefaultDurations = []uint16{
		QN, QN, HN, EN, EN, EN, EN, EN, EN, QN, QN, QN, HN, EN, EN, EN,
		EN, EN, EN, QN, HN, HN, EN, EN, EN, EN, QN, QN, HN, HN, FN,
	}
	DefaultRests = []uint16{
		RT, RT, HT, RT, RT, RT, RT, RT, RT, RT, RT, RT, HT, RT, RT, RT,
		RT, RT, RT, RT, RT, HT, RT, RT, RT, RT, RT, RT, RT, HT, HT,
	}
)
