package directory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arnorgym/internal/common"
)

// Parse decodes a directory document. The document must be a JSON object
// whose keys are non-empty usernames and whose values are record objects.
// Every failure wraps common.ErrFormat.
func Parse(doc []byte) (*Directory, error) {
	var raw map[string]*UserRecord
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFormat, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an object", common.ErrFormat)
	}

	d := New()
	for name, rec := range raw {
		if name == "" {
			return nil, fmt.Errorf("%w: empty username", common.ErrFormat)
		}
		if rec == nil {
			return nil, fmt.Errorf("%w: record %q is null", common.ErrFormat, name)
		}
		d.Put(name, *rec)
	}
	return d, nil
}

// Export renders the whole directory as an indented JSON document suitable
// for download. It does not modify d.
func Export(d *Directory) ([]byte, error) {
	if d == nil {
		return nil, errors.New("nil directory")
	}
	return json.MarshalIndent(d.users, "", "  ")
}

// Merge copies every record of src into dst. A username present in both
// ends up with src's record as a whole; fields missing from the imported
// record are dropped, not merged.
func Merge(dst, src *Directory) int {
	for name, rec := range src.users {
		dst.users[name] = rec
	}
	return len(src.users)
}
