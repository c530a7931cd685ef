package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseProgram(t *testing.T) {
	for _, c := range []struct {
		text string
		want []int
		err  string
	}{
		{text: "1,0,0,0,99\n", want: []int{1, 0, 0, 0, 99}},
		{text: " 1, 2 ,3 ", want: []int{1, 2, 3}},
		{text: "-5,7", want: []int{-5, 7}},
		{text: "99", want: []int{99}},
		{text: "", err: "empty program"},
		{text: " \n", err: "empty program"},
		{text: "1,,2", err: `value 1: invalid integer ""`},
		{text: "1,a", err: `value 1: invalid integer "a"`},
		{text: "1,2,", err: `value 2: invalid integer ""`},
	} {
		got, err := parseProgram(strings.NewReader(c.text))
		if c.err != "" {
			if err == nil || err.Error() != c.err {
				t.Errorf("parseProgram(%q) error = %v, want %q", c.text, err, c.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseProgram(%q) returned error: %v", c.text, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("parseProgram(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestPatch(t *testing.T) {
	prog := []int{1, 0, 0, 3, 99}
	got, err := patch(prog, 12, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 12, 2, 3, 99}; !reflect.DeepEqual(got, want) {
		t.Errorf("patch = %v, want %v", got, want)
	}
	if prog[1] != 0 {
		t.Errorf("patch modified its argument")
	}
	if got, _ := patch(prog, -1, 7); !reflect.DeepEqual(got, []int{1, 0, 7, 3, 99}) {
		t.Errorf("patch with no noun = %v", got)
	}
	if _, err := patch([]int{99}, 1, 1); err == nil {
		t.Errorf("patch of short program succeeded")
	}
	if got, err := patch([]int{99}, -1, -1); err != nil || !reflect.DeepEqual(got, []int{99}) {
		t.Errorf("patch of short program without noun or verb = %v, %v", got, err)
	}
}
