// Package schema defines the logical metadata fields and the static table
// that maps each of them onto XMP, IPTC and EXIF tag keys.
package schema

import "strings"

// Key identifies a tag in the canonical Namespace.Group.Name form,
// e.g. "Xmp.dc.title" or "Iptc.Application2.Headline".
type Key string

// Canonical tag keys used by the mapping table.
const (
	XmpTitle       Key = "Xmp.dc.title"
	XmpDescription Key = "Xmp.dc.description"
	XmpSubject     Key = "Xmp.dc.subject"
	XmpCreator     Key = "Xmp.dc.creator"
	XmpRights      Key = "Xmp.dc.rights"

	IptcHeadline  Key = "Iptc.Application2.Headline"
	IptcCaption   Key = "Iptc.Application2.Caption"
	IptcKeywords  Key = "Iptc.Application2.Keywords"
	IptcByline    Key = "Iptc.Application2.Byline"
	IptcCopyright Key = "Iptc.Application2.Copyright"

	ExifImageDescription Key = "Exif.Image.ImageDescription"
	ExifDateTimeOriginal Key = "Exif.Photo.DateTimeOriginal"
)

// Namespace is one of the metadata embedding standards.
type Namespace int

const (
	// NamespaceUnknown is returned for keys without a recognised prefix.
	NamespaceUnknown Namespace = iota
	// NamespaceXMP is Adobe's Extensible Metadata Platform.
	NamespaceXMP
	// NamespaceIPTC is the IPTC-IIM record set.
	NamespaceIPTC
	// NamespaceEXIF is the EXIF/TIFF IFD tag set.
	NamespaceEXIF
)

func (n Namespace) String() string {
	switch n {
	case NamespaceXMP:
		return "XMP"
	case NamespaceIPTC:
		return "IPTC"
	case NamespaceEXIF:
		return "EXIF"
	default:
		return "Unknown"
	}
}

// Namespace returns the standard the key belongs to.
func (k Key) Namespace() Namespace {
	prefix, _, _ := strings.Cut(string(k), ".")
	switch prefix {
	case "Xmp":
		return NamespaceXMP
	case "Iptc":
		return NamespaceIPTC
	case "Exif":
		return NamespaceEXIF
	default:
		return NamespaceUnknown
	}
}

// Repeatable reports whether the key is stored as repeated single-value
// entries. Setting a string on such a key adds an entry instead of
// replacing the existing one.
func (k Key) Repeatable() bool {
	return k == IptcKeywords
}

// MultiValue reports whether the key natively holds a list of values
// set in a single call.
func (k Key) MultiValue() bool {
	return k == XmpSubject
}

// Field names a logical metadata field.
type Field int

const (
	// FieldTitle is the image title.
	FieldTitle Field = iota
	// FieldDescription is the caption / description.
	FieldDescription
	// FieldKeywords is the ordered keyword list.
	FieldKeywords
	// FieldDateTaken is the capture time. Read-only.
	FieldDateTaken
	// FieldAuthor is the creator.
	FieldAuthor
	// FieldCopyright is the rights statement.
	FieldCopyright
)

var fieldNames = [...]string{
	FieldTitle:       "title",
	FieldDescription: "description",
	FieldKeywords:    "keywords",
	FieldDateTaken:   "date_taken",
	FieldAuthor:      "author",
	FieldCopyright:   "copyright",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Kind describes the value shape of a field.
type Kind int

const (
	// KindText is a plain string, empty when absent.
	KindText Kind = iota
	// KindTextList is an ordered list of strings, empty when absent.
	KindTextList
	// KindOptionalText is a string that may be absent (nil).
	KindOptionalText
)

// Mapping is one row of the namespace table.
//
// Read lists keys in fallback order: the first present value wins.
// Write lists every key the value fans out to. A nil Write marks the
// field read-only.
type Mapping struct {
	Field Field
	Kind  Kind
	Read  []Key
	Write []Key
}

// ReadOnly reports whether the field is never written.
func (m Mapping) ReadOnly() bool {
	return len(m.Write) == 0
}

// Table is the fixed field-to-tag mapping. Order matches Field values.
var Table = []Mapping{
	{
		Field: FieldTitle,
		Kind:  KindText,
		Read:  []Key{XmpTitle, IptcHeadline},
		Write: []Key{XmpTitle, IptcHeadline},
	},
	{
		Field: FieldDescription,
		Kind:  KindText,
		Read:  []Key{XmpDescription, IptcCaption, ExifImageDescription},
		Write: []Key{XmpDescription, IptcCaption, ExifImageDescription},
	},
	{
		Field: FieldKeywords,
		Kind:  KindTextList,
		Read:  []Key{XmpSubject, IptcKeywords},
		Write: []Key{XmpSubject, IptcKeywords},
	},
	{
		Field: FieldDateTaken,
		Kind:  KindOptionalText,
		Read:  []Key{ExifDateTimeOriginal},
	},
	{
		Field: FieldAuthor,
		Kind:  KindText,
		Read:  []Key{XmpCreator, IptcByline},
		Write: []Key{XmpCreator, IptcByline},
	},
	{
		Field: FieldCopyright,
		Kind:  KindText,
		Read:  []Key{XmpRights, IptcCopyright},
		Write: []Key{XmpRights, IptcCopyright},
	},
}

// Lookup returns the mapping row for f.
func Lookup(f Field) (Mapping, bool) {
	for _, m := range Table {
		if m.Field == f {
			return m, true
		}
	}
	return Mapping{}, false
}
