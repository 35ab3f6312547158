package gen

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// A Decision is the outcome of the incremental gate for one output.
type Decision uint

const (
	// Regenerate the output.
	Regenerate Decision = iota
	// Skip the output, its recorded hash matches the template.
	Skip
)

// String implements the fmt.Stringer interface.
func (d Decision) String() string {
	if d == Skip {
		return "skip"
	}
	return "regenerate"
}

// headerLines bounds the number of lines scanned for the hash marker.
const headerLines = 32

// ReadHash returns the content hash recorded in the header of a previously
// generated file. It returns an empty hash if the file has no hash line,
// and an error wrapping fs.ErrNotExist if the file does not exist.
func ReadHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for i := 0; i < headerLines && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "//"))
		if hash, ok := strings.CutPrefix(line, HashMarker); ok {
			return strings.TrimSpace(hash), nil
		}
	}
	return "", sc.Err()
}

// Decide runs the incremental gate: an existing output whose recorded hash
// equals the template hash is skipped unless force is set. Missing outputs,
// outputs without a hash line and templates without a hash are always
// regenerated.
func Decide(path, hash string, force bool) (Decision, error) {
	if force || hash == "" {
		return Regenerate, nil
	}
	recorded, err := ReadHash(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Regenerate, nil
	case err != nil:
		return Regenerate, err
	case recorded == hash:
		return Skip, nil
	default:
		return Regenerate, nil
	}
}
