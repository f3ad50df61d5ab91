// Package loader preloads game resources one item per frame.
//
// A Loader walks a flattened list of Entry descriptors, classifies each by
// extension, reads it from an afero filesystem through the Handler for its
// Kind and stores the result in a Cache. It is driven by a
// retained.Scheduler, so loading never blocks the frame loop for more than
// one item.
package loader

import (
	"fmt"
	"path"
	"strings"
)

// Kind is the resource category an entry is loaded as.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindImage
	KindSound
	KindXML
	KindBinary
	KindFont
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindSound:
		return "sound"
	case KindXML:
		return "xml"
	case KindBinary:
		return "binary"
	case KindFont:
		return "font"
	case KindText:
		return "text"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// extensionKinds maps lowercase file extensions to their kind.
var extensionKinds = map[string]Kind{
	"png":  KindImage,
	"jpg":  KindImage,
	"jpeg": KindImage,
	"bmp":  KindImage,
	"gif":  KindImage,
	"webp": KindImage,

	"mp3": KindSound,
	"ogg": KindSound,
	"wav": KindSound,
	"mp4": KindSound,
	"m4a": KindSound,

	"plist": KindXML,
	"xml":   KindXML,
	"fnt":   KindXML,
	"tmx":   KindXML,
	"tsx":   KindXML,

	"ccbi": KindBinary,

	"txt":        KindText,
	"vsh":        KindText,
	"fsh":        KindText,
	"json":       KindText,
	"exportjson": KindText,
}

// Entry describes one resource, or a group of them.
//
// A font entry sets FontName; its Src is the font file. A group sets
// Entries and usually leaves Src empty.
type Entry struct {
	Src      string  `toml:"src,omitempty"`
	FontName string  `toml:"font_name,omitempty"`
	Entries  []Entry `toml:"entries,omitempty"`
}

// Kind classifies the entry.
func (e Entry) Kind() Kind {
	return Classify(e)
}

// Classify returns the kind of e. Entries with a FontName are fonts;
// everything else is classified by the extension of Src, ignoring any query
// string and letter case.
func Classify(e Entry) Kind {
	if e.FontName != "" {
		return KindFont
	}
	if k, ok := extensionKinds[Extension(e.Src)]; ok {
		return k
	}
	return KindUnknown
}

// Path is the file Src names, without any "?query" suffix. Handlers read
// Path; the cache stays keyed by Src.
func (e Entry) Path() string {
	return stripQuery(e.Src)
}

func stripQuery(src string) string {
	if i := strings.IndexByte(src, '?'); i > 0 {
		return src[:i]
	}
	return src
}

// Extension returns the lowercase extension of src without the dot, with
// any "?query" suffix removed.
func Extension(src string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(stripQuery(src)), "."))
}

// Flatten expands groups depth-first. An entry that has both a Src and
// nested Entries contributes itself before its children. Entries with
// neither are dropped.
func Flatten(entries []Entry) []Entry {
	var out []Entry
	var walk func([]Entry)
	walk = func(list []Entry) {
		for _, e := range list {
			if e.Src != "" {
				out = append(out, Entry{Src: e.Src, FontName: e.FontName})
			}
			walk(e.Entries)
		}
	}
	walk(entries)
	return out
}
