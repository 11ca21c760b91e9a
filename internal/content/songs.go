package content

import (
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/song"
)

const drumKit = "drum_kit"

// groove is the fallback pattern for activities without their own song.
var groove = song.NewMeasure(
	song.Note(4, "E", 0),
	song.Note(10, "E", 0),
	song.Note(15, "E", 0),
	song.Note(7, "E", 2),
	song.Note(12, "D", 2),
	song.Note(4, "Bass_Drum_1", 4).WithInstrument(drumKit),
	song.Note(12, "Bass_Drum_1", 4).WithInstrument(drumKit),
	song.Note(8, "Closed_High_Hat", 6).WithInstrument(drumKit),
	song.Note(16, "Closed_High_Hat", 6).WithInstrument(drumKit),
	song.Note(4, "A", 8),
	song.Note(7, "A", 8),
)

// wakeUp is a busier, rising pattern for class.
var wakeUp = song.NewMeasure(
	song.Note(0, "C", 0),
	song.Note(2, "E", 2),
	song.Note(4, "G", 4),
	song.Note(6, "C5", 6),
	song.Note(8, "G", 4),
	song.Note(10, "E", 2),
	song.Note(12, "C", 0),
	song.Note(12, "Bass_Drum_1", 8).WithInstrument(drumKit),
)

// mumble is the heavy, dragging pattern of a binge.
var mumble = song.NewMeasure(
	song.Note(0, "A2", 0),
	song.Note(3, "A2", 0),
	song.Note(6, "C3", 2),
	song.Note(9, "A2", 0),
	song.Note(12, "Bass_Drum_1", 4).WithInstrument(drumKit).WithType(emotion.Despair),
)

// lullaby is slow and sparse, for going to bed.
var lullaby = song.NewMeasure(
	song.Note(0, "E", 0),
	song.Note(6, "D", 2),
	song.Note(12, "C", 0),
)

// breath is the calm pattern of a breakdown: energy notes only.
var breath = song.NewMeasure(
	song.Note(0, "C", 0).WithType(emotion.None),
	song.Note(8, "G", 0).WithType(emotion.None),
)

func defaultSong() song.Song {
	return song.New(
		song.Part{Measure: groove, Index: 0},
		song.Part{Measure: groove.ReplaceAllPitches("F"), Index: 1},
	)
}

func classSong() song.Song {
	return song.New(
		song.Part{Measure: wakeUp, Index: 0},
		song.Part{Measure: wakeUp.ReplaceAllPitches("D"), Index: 1},
		song.Part{Measure: wakeUp, Index: 2},
	)
}

func bingeSong() song.Song {
	return song.New(
		song.Part{Measure: mumble, Index: 0},
		song.Part{Measure: mumble, Index: 1},
	)
}

func bedSong() song.Song {
	return song.New(song.Part{Measure: lullaby, Index: 0})
}

func breathSong() song.Song {
	return song.New(
		song.Part{Measure: breath, Index: 0},
		song.Part{Measure: breath, Index: 1},
	)
}

func nothingSong() song.Song {
	return song.Song{Notes: []song.NoteSpec{
		song.Note(4, "C", 0),
		song.Note(5, "C", 0),
		song.Note(6, "C", 2),
		song.Note(7, "C", 2),
	}}
}
