// Package imagemeta reads and writes a fixed set of descriptive image
// metadata fields, reconciling the XMP, IPTC and EXIF tags that carry them.
//
// # Quick Start
//
// Reading metadata:
//
//	md, err := imagemeta.Read("photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s by %s\n", md.Title, md.Author)
//
// Writing metadata:
//
//	md.Title = "Sunset over the bay"
//	md.Keywords = []string{"sunset", "bay"}
//	if err := imagemeta.Write("photo.jpg", md); err != nil {
//		log.Fatal(err)
//	}
//
// # Fields
//
// Each field maps to tags in up to three namespaces:
//
//	title        Xmp.dc.title, Iptc.Application2.Headline
//	description  Xmp.dc.description, Iptc.Application2.Caption, Exif.Image.ImageDescription
//	keywords     Xmp.dc.subject, Iptc.Application2.Keywords
//	date_taken   Exif.Photo.DateTimeOriginal (read-only)
//	author       Xmp.dc.creator, Iptc.Application2.Byline
//	copyright    Xmp.dc.rights, Iptc.Application2.Copyright
//
// Read takes the first tag in the order listed that holds a non-empty
// value. Write stores every non-empty field into all of its tags, so other
// tools reading any single namespace see the same value. Empty fields are
// skipped rather than cleared; ClearKeywords removes keywords explicitly.
//
// # Backends
//
// Tags are accessed through a backend:
//
//   - exiftool (default): drives a long-running exiftool process; reads
//     and writes every supported container.
//   - exif: pure Go, read-only, EXIF fields only.
//
// Select one with WithBackend, or supply any Opener with WithOpener.
// Call Shutdown when done to stop the exiftool process.
//
// # Error Handling
//
// Failures are typed and match sentinels through errors.Is:
//
//   - *OpenError (ErrOpen): the file or its tags could not be opened
//   - *TagWriteError (ErrTagWrite): a tag was rejected; nothing was saved
//   - *PersistError (ErrPersist): saving the staged changes failed
//
// # Concurrency
//
// Operations on different files may run concurrently; ReadMany does so
// with a bounded worker pool. Concurrent writes to the same file are not
// coordinated.
package imagemeta
