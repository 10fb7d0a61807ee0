package tokens

import "bytes"

// record is one ledger line; data[start:end] includes the trailing newline
// when there is one.
type record struct {
	start, end int
	line       []byte
}

// token returns the part of the line before the first space, without any
// line terminator.
func (r record) token() []byte {
	tok, _, _ := bytes.Cut(r.line, []byte(" "))
	return bytes.TrimRight(tok, "\r\n")
}

func scan(data []byte) []record {
	var out []record
	for start := 0; start < len(data); {
		end := bytes.IndexByte(data[start:], '\n')
		if end < 0 {
			end = len(data)
		} else {
			end += start + 1
		}
		out = append(out, record{start: start, end: end, line: data[start:end]})
		start = end
	}
	return out
}

// findToken returns the first record starting with "<token> ".
func findToken(data, token []byte) (record, bool) {
	prefix := append(append([]byte{}, token...), ' ')
	for _, rec := range scan(data) {
		if bytes.HasPrefix(rec.line, prefix) {
			return rec, true
		}
	}
	return record{}, false
}

// findUser returns the first record whose trimmed line ends with " <user>".
func findUser(data, user []byte) (record, bool) {
	suffix := append([]byte{' '}, user...)
	for _, rec := range scan(data) {
		if bytes.HasSuffix(bytes.TrimSpace(rec.line), suffix) {
			return rec, true
		}
	}
	return record{}, false
}
