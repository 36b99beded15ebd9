// Package patches holds the factory preset bank of the device: the 128
// timbre names a part can be switched to with a program change, plus the
// panel labels for the parts themselves.
package patches

// Factory timbre names, groups A and B, in program change order. Names are
// at most 10 characters, exactly as stored in the device ROM.
var names = [128]string{
	// Group A
	"AcouPiano1", "AcouPiano2", "AcouPiano3",
	"ElecPiano1", "ElecPiano2", "ElecPiano3", "ElecPiano4",
	"Honkytonk",
	"Elec Org 1", "Elec Org 2", "Elec Org 3", "Elec Org 4",
	"Pipe Org 1", "Pipe Org 2", "Pipe Org 3",
	"Accordion",
	"Harpsi 1", "Harpsi 2", "Harpsi 3",
	"Clavi 1", "Clavi 2", "Clavi 3",
	"Celesta 1", "Celesta 2",
	"Syn Brass1", "Syn Brass2", "Syn Brass3", "Syn Brass4",
	"Syn Bass 1", "Syn Bass 2", "Syn Bass 3", "Syn Bass 4",
	"Fantasy", "Harmo Pan", "Chorale", "Glasses",
	"Soundtrack", "Atmosphere", "Warm Bell", "Funny Vox",
	"Echo Bell", "Ice Rain", "Oboe 2001", "Echo Pan",
	"DoctorSolo", "Schooldaze", "BellSinger", "SquareWave",
	"Str Sect 1", "Str Sect 2", "Str Sect 3",
	"Pizzicato", "Violin 1", "Violin 2", "Cello 1", "Cello 2",
	"Contrabass", "Harp 1", "Harp 2",
	"Guitar 1", "Guitar 2", "Elec Gtr 1", "Elec Gtr 2",
	"Sitar",
	// Group B
	"Acou Bass1", "Acou Bass2", "Elec Bass1", "Elec Bass2",
	"Slap Bass1", "Slap Bass2", "Fretless 1", "Fretless 2",
	"Flute 1", "Flute 2", "Piccolo 1", "Piccolo 2",
	"Recorder", "Pan Pipes",
	"Sax 1", "Sax 2", "Sax 3", "Sax 4",
	"Clarinet 1", "Clarinet 2", "Oboe", "Engl Horn", "Bassoon",
	"Harmonica",
	"Trumpet 1", "Trumpet 2", "Trombone 1", "Trombone 2",
	"Fr Horn 1", "Fr Horn 2", "Tuba",
	"Brs Sect 1", "Brs Sect 2",
	"Vibe 1", "Vibe 2", "Syn Mallet",
	"Windbell", "Glock", "Tube Bell", "Xylophone", "Marimba",
	"Koto", "Sho", "Shakuhachi",
	"Whistle 1", "Whistle 2", "BottleBlow", "BreathPipe",
	"Timpani", "MelodicTom", "Deep Snare",
	"Elec Perc1", "Elec Perc2",
	"Taiko", "Taiko Rim", "Cymbal", "Castanets", "Triangle",
	"Orche Hit", "Telephone", "Bird Tweet",
	"OneNoteJam", "WaterBells", "JungleTune",
}

// Name returns the factory timbre name for a program number. Program
// numbers are 7-bit, so every value of the lower 7 bits resolves.
func Name(program uint8) string {
	return names[program&0x7f]
}

// PartLabel returns the panel label for a part index. Melodic parts are
// numbered 1..8, the ninth part is the rhythm part.
func PartLabel(part uint8) string {
	if part == 8 {
		return "Rhythm Part"
	}
	return "Part " + string('1'+rune(part))
}
