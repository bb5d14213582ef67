package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontWide   = 0x10
	FontTall   = 0x01
)

// Paper widths in characters.
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream and, alongside it, a plain text
// rendering of the same lines for previews.
type Document struct {
	buf   bytes.Buffer
	plain strings.Builder
	width int
	align int
}

// NewDocument creates a document for a printer that fits charWidth columns.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

func (d *Document) Width() int { return d.width }

// Init sends ESC @.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	d.align = AlignLeft
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	d.plain.WriteByte('\n')
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	d.align = align
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s as one line.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	d.writePlain(s)
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Title prints s centered in bold double size, then restores the previous
// alignment.
func (d *Document) Title(s string) *Document {
	prev := d.align
	return d.SetAlign(AlignCenter).
		SetBold(true).
		SetFontSize(FontDouble).
		Text(s).
		SetFontSize(FontNormal).
		SetBold(false).
		SetAlign(prev)
}

func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue prints key left aligned and value right aligned on one line.
func (d *Document) KeyValue(key, value string) *Document {
	return d.Text(pad(key, value, d.width))
}

// ItemLine prints "2x Name   total". Names too long for the line wrap onto
// indented continuation lines.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	room := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total) - 1
	if room < 4 {
		room = 4
	}
	chunks := wrap(name, room)
	d.Text(pad(prefix+chunks[0], total, d.width))
	indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))
	for _, c := range chunks[1:] {
		d.Text(indent + c)
	}
	return d
}

// Note prints an indented annotation under an item, e.g. a kitchen note.
func (d *Document) Note(s string) *Document {
	if s == "" {
		return d
	}
	for _, c := range wrap(s, d.width-5) {
		d.Text("   > " + c)
	}
	return d
}

func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the ESC/POS stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Plain returns the printable lines without control codes.
func (d *Document) Plain() string {
	return d.plain.String()
}

func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.plain.Reset()
	return d.Init()
}

func (d *Document) writePlain(s string) {
	n := utf8.RuneCountInString(s)
	if n < d.width {
		switch d.align {
		case AlignCenter:
			s = strings.Repeat(" ", (d.width-n)/2) + s
		case AlignRight:
			s = strings.Repeat(" ", d.width-n) + s
		}
	}
	d.plain.WriteString(s)
	d.plain.WriteByte('\n')
}

func pad(left, right string, width int) string {
	spaces := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// wrap splits s into chunks of at most n runes, preferring word boundaries.
func wrap(s string, n int) []string {
	var out []string
	line := ""
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > n {
			if line != "" {
				out = append(out, line)
				line = ""
			}
			r := []rune(word)
			out = append(out, string(r[:n]))
			word = string(r[n:])
		}
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= n:
			line += " " + word
		default:
			out = append(out, line)
			line = word
		}
	}
	if line != "" || len(out) == 0 {
		out = append(out, line)
	}
	return out
}
