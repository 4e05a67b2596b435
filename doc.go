// Package annotkit converts annotations of animal and human vocalizations
// between file formats.
//
// Format plugins read third-party annotation files and normalize them into
// a small set of canonical values: a Segment is one labeled time interval,
// a Sequence is an ordered list of Segments from one recording, a BBox is a
// labeled time x frequency box, and an Annotation binds Sequences or BBoxes
// to the file they were loaded from and the audio they describe.
//
// # Quick Start
//
// Loading an Audacity label track:
//
//	t, err := annotkit.NewTranscriber("aud-seq")
//	if err != nil {
//		log.Fatal(err) // unknown format names fail here, not later
//	}
//	loaded, err := t.FromFile("bird1.txt", annotkit.WithNotatedPath("bird1.wav"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	annots, err := loaded.ToAnnot()
//
// Writing any sequence-like annotations to one generic CSV table and reading
// them back:
//
//	if err := annotkit.ToCSV("all.csv", annots); err != nil {
//		log.Fatal(err)
//	}
//	same, err := annotkit.FromCSV("all.csv")
//
// # Formats
//
//   - aud-seq: Audacity standard label track (.txt)
//   - aud-bbox: Audacity extended label track with frequency ranges (.txt)
//   - generic-seq: the generic CSV table (.csv)
//   - generic-seq-db: the generic table stored in SQLite (.sqlite, .db)
//   - raven: Raven selection tables (.txt)
//   - simple-seq: onset, offset and label columns (.csv, .txt)
//   - timit: TIMIT phonetic and word transcriptions (.phn, .wrd)
//
// Formats register themselves by name when this package is imported. Call
// AsList for the names, and Register to add a format of your own.
//
// # Generic table
//
// The generic table holds one row per segment with the columns
//
//	onset_s, offset_s, onset_sample, offset_sample, label,
//	annot_path, notated_path, annot, seq
//
// where annot is the index of the Annotation and seq the index of the
// Sequence within it. An empty Sequence is stored as a single row with no
// times and an empty label, so the metadata of its Annotation survives.
// Encoding, decoding and encoding again yields the same table.
//
// # Batch loading
//
// LoadMany reads many files of one format concurrently, limited to
// runtime.NumCPU() goroutines, and returns the Annotations in input order:
//
//	annots, err := annotkit.LoadMany(ctx, "timit", paths,
//	    annotkit.WithSampleRate(16000),
//	)
package annotkit
