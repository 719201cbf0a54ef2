package directory

import (
	"encoding/json"
	"sort"

	"github.com/dmitrijs2005/arnorgym/internal/timex"
)

// UserRecord is one account of the directory. Role is set only on built-in
// records, RegisteredAt only on records created by registration.
type UserRecord struct {
	Password     string          `json:"password"`
	Email        string          `json:"email,omitempty"`
	Role         string          `json:"role,omitempty"`
	RegisteredAt timex.Timestamp `json:"registeredAt,omitzero"`
}

// Directory maps usernames to records. Usernames are case-sensitive and
// unique; there are no secondary indices. The zero value is not usable,
// call New.
type Directory struct {
	users map[string]UserRecord
}

func New() *Directory {
	return &Directory{users: make(map[string]UserRecord)}
}

func (d *Directory) Get(username string) (UserRecord, bool) {
	rec, ok := d.users[username]
	return rec, ok
}

func (d *Directory) Has(username string) bool {
	_, ok := d.users[username]
	return ok
}

// Put inserts or replaces the record stored under username.
func (d *Directory) Put(username string, rec UserRecord) {
	d.users[username] = rec
}

func (d *Directory) Len() int {
	return len(d.users)
}

// Usernames returns all usernames in sorted order.
func (d *Directory) Usernames() []string {
	names := make([]string, 0, len(d.users))
	for name := range d.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset makes d an exact copy of src, or empties it when src is nil.
func (d *Directory) Reset(src *Directory) {
	d.users = make(map[string]UserRecord)
	if src == nil {
		return
	}
	for name, rec := range src.users {
		d.users[name] = rec
	}
}

func (d *Directory) Clone() *Directory {
	c := New()
	c.Reset(d)
	return c
}

// MarshalJSON encodes the directory as a JSON object keyed by username.
// encoding/json sorts map keys, so the output is stable.
func (d *Directory) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.users)
}
