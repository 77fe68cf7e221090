package output

// Output formats understood by the writers.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatText  = "text"
)

// Formats lists every supported format in help order.
var Formats = []string{FormatJSON, FormatJSONL, FormatText}

// ValidFormat reports whether f names a supported format.
func ValidFormat(f string) bool {
	for _, x := range Formats {
		if x == f {
			return true
		}
	}
	return false
}
