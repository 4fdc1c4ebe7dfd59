package models

import (
	"fmt"
	"strings"
)

// Field names a contact attribute. The string value doubles as the export key.
type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldAddress   Field = "address"
	FieldCity      Field = "city"
	FieldState     Field = "state"
	FieldZipCode   Field = "zip_code"
	FieldPhone     Field = "phone_number"
	FieldEmail     Field = "email"
)

// Fields lists every contact field in record order.
var Fields = []Field{
	FieldFirstName, FieldLastName, FieldAddress, FieldCity,
	FieldState, FieldZipCode, FieldPhone, FieldEmail,
}

// Label returns a human readable name for prompts and headers.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldAddress:
		return "Address"
	case FieldCity:
		return "City"
	case FieldState:
		return "State"
	case FieldZipCode:
		return "Zip Code"
	case FieldPhone:
		return "Phone Number"
	case FieldEmail:
		return "Email"
	}
	return string(f)
}

// ParseField resolves a field by its key ("zip_code") case-insensitively.
func ParseField(s string) (Field, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fields {
		if string(f) == key {
			return f, true
		}
	}
	return "", false
}

// Contact is one person's details.
//
// FirstName is the identity key: two contacts with the same first name are the same entity.
// Contacts are values, so a copy held by a caller never changes when its book is edited.
type Contact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// NewContact validates every field of raw and returns the normalized contact.
//
// The first failing field is reported as a [*ValidationError].
func NewContact(raw Contact) (Contact, error) {
	var c Contact
	for _, f := range Fields {
		v, err := ValidateField(f, raw.Get(f))
		if err != nil {
			return Contact{}, err
		}
		c = c.With(f, v)
	}
	return c, nil
}

// Key returns the identity key.
func (c Contact) Key() string { return c.FirstName }

// Equal reports whether c and o are the same entity.
func (c Contact) Equal(o Contact) bool { return c.FirstName == o.FirstName }

// Get returns the value of field f.
func (c Contact) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldAddress:
		return c.Address
	case FieldCity:
		return c.City
	case FieldState:
		return c.State
	case FieldZipCode:
		return c.ZipCode
	case FieldPhone:
		return c.PhoneNumber
	case FieldEmail:
		return c.Email
	}
	return ""
}

// With returns a copy of c with field f set to v.
func (c Contact) With(f Field, v string) Contact {
	switch f {
	case FieldFirstName:
		c.FirstName = v
	case FieldLastName:
		c.LastName = v
	case FieldAddress:
		c.Address = v
	case FieldCity:
		c.City = v
	case FieldState:
		c.State = v
	case FieldZipCode:
		c.ZipCode = v
	case FieldPhone:
		c.PhoneNumber = v
	case FieldEmail:
		c.Email = v
	}
	return c
}

// Merge overlays the non-blank fields of changes onto c.
//
// Blank means unchanged, per field, including the first name.
func (c Contact) Merge(changes Contact) Contact {
	for _, f := range Fields {
		if v := changes.Get(f); strings.TrimSpace(v) != "" {
			c = c.With(f, v)
		}
	}
	return c
}

// Values returns the field values in [Fields] order.
func (c Contact) Values() []string {
	values := make([]string, len(Fields))
	for i, f := range Fields {
		values[i] = c.Get(f)
	}
	return values
}

// FullName joins the first and last name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Contact) String() string {
	return fmt.Sprintf(
		"Name: %s %s\nAddress: %s, %s, %s - %s\nPhone Number: %s\nEmail: %s",
		c.FirstName, c.LastName, c.Address, c.City, c.State, c.ZipCode, c.PhoneNumber, c.Email,
	)
}
