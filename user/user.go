// Package user is the sample domain for projector: a single user record
// fetched from a repository and rendered as a card.
package user

import (
	"strconv"

	"github.com/zoobzio/projector"
)

// User is the record produced by a Repository.
//
// Records read from outside the process are checked against the validate
// tags. An empty name with an unknown age is still a valid record; it
// classifies as empty.
type User struct {
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age" validate:"gte=0"`
}

// View is the display form of a User. Both fields are already strings so
// the screen does no formatting of its own.
type View struct {
	Name string
	Age  string
}

// Empty reports whether both display fields are empty.
func (v View) Empty() bool {
	return v.Name == "" && v.Age == ""
}

// FormatAge renders an age for display. Zero means the age is unknown and
// renders as the empty string.
func FormatAge(age int) string {
	if age == 0 {
		return ""
	}
	return strconv.Itoa(age)
}

// Classify converts a fetched User into its View. The view is empty only
// when the name and the rendered age are both empty.
func Classify(u User) (View, bool) {
	v := View{Name: u.Name, Age: FormatAge(u.Age)}
	return v, v.Empty()
}

// Ensure Classify is a projector.Classifier.
var _ projector.Classifier[User, View] = Classify
