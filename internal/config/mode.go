package config

// AddressingMode selects how generated references are expressed.
type AddressingMode string

const (
	// ModeRelativeLocal emits relative filesystem-style paths ("../guide.html").
	ModeRelativeLocal AddressingMode = "relative-local"
	// ModeWebRooted emits absolute paths under the web path root ("/docs/guide.html").
	ModeWebRooted AddressingMode = "web-rooted"
)

var addressingModeNormalizer = newEnumNormalizer(map[string]AddressingMode{
	"relative-local": ModeRelativeLocal,
	"relative":       ModeRelativeLocal,
	"local":          ModeRelativeLocal,
	"web-rooted":     ModeWebRooted,
	"web":            ModeWebRooted,
	"absolute":       ModeWebRooted,
}, ModeWebRooted)

// NormalizeAddressingMode converts user input to an AddressingMode, defaulting to web-rooted.
func NormalizeAddressingMode(raw string) AddressingMode {
	return addressingModeNormalizer.normalize(raw)
}

// ParseAddressingMode converts user input to an AddressingMode or returns an error.
func ParseAddressingMode(raw string) (AddressingMode, error) {
	return addressingModeNormalizer.parse(raw)
}

func (m AddressingMode) String() string { return string(m) }
