/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"message only",
			New(Value, "Invalid date"),
			"Invalid date",
		},
		{
			"ordered context",
			New(ItemCount, "Missing mandatory property: FN").
				With(KeyProperty, "FN").
				With(KeyFile, "a.vcf").
				With(KeyFileLine, 5),
			"Missing mandatory property: FN\nProperty: FN\nFile: a.vcf\nFile line: 5",
		},
		{
			"replaced key keeps position",
			New(LineFormat, "Continuation at start").
				With(KeyFileLine, 1).
				With(KeyFile, "b.vcf").
				With(KeyFileLine, 9),
			"Continuation at start\nFile line: 9\nFile: b.vcf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	base := New(Naming, "Invalid property name: FOO")
	wrapped := fmt.Errorf("decompose: %w", base)

	if got := Annotate(wrapped, KeyCardLine, 3); got != wrapped {
		t.Fatalf("Annotate() returned a different error")
	}
	if v, ok := base.Context.Get(KeyCardLine); !ok || v != 3 {
		t.Errorf("context %s = %v, %v; want 3, true", KeyCardLine, v, ok)
	}

	AnnotateDefault(wrapped, KeyCardLine, 7)
	if v, _ := base.Context.Get(KeyCardLine); v != 3 {
		t.Errorf("AnnotateDefault overwrote %s: got %v", KeyCardLine, v)
	}
	AnnotateDefault(wrapped, KeyFile, "x.vcf")
	if !base.Context.Has(KeyFile) {
		t.Errorf("AnnotateDefault did not add missing key %s", KeyFile)
	}

	plain := stderrors.New("plain")
	if got := Annotate(plain, KeyFile, "x"); got != plain {
		t.Errorf("Annotate() changed a foreign error")
	}
	if Annotate(nil, KeyFile, "x") != nil {
		t.Errorf("Annotate(nil) != nil")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   Kind
		wantOK bool
	}{
		{"direct", New(Value, "x"), Value, true},
		{"wrapped", fmt.Errorf("ctx: %w", New(LineFormat, "x")), LineFormat, true},
		{"foreign", stderrors.New("x"), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindOf(tt.err)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("KindOf() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
			if tt.wantOK && !IsKind(tt.err, tt.want) {
				t.Errorf("IsKind(%v) = false", tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Usage, "usage"},
		{LineFormat, "line-format"},
		{Naming, "naming"},
		{ItemCount, "item-count"},
		{Value, "value"},
		{Kind(0), "unknown"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"line-format", LineFormat, false},
		{"LineFormat", LineFormat, false},
		{"ITEM_COUNT", ItemCount, false},
		{"naming", Naming, false},
		{"value", Value, false},
		{"usage", Usage, false},
		{"", 0, true},
		{"fatal", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestError_MarshalJSON(t *testing.T) {
	e := New(ItemCount, "Invalid value count: 4 (expected 5)").With(KeyProperty, "N")

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"kind":"item-count","message":"Invalid value count: 4 (expected 5)","context":[{"key":"Property","value":"N"}]}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var back Error
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back.Kind != ItemCount || back.Message != e.Message {
		t.Errorf("round trip = %+v", back)
	}
}

func TestKind_YAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Kind{"kind": Naming})
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if string(out) != "kind: naming\n" {
		t.Errorf("yaml.Marshal() = %q", out)
	}

	var back map[string]Kind
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if back["kind"] != Naming {
		t.Errorf("yaml round trip = %v", back["kind"])
	}

	if _, err := yaml.Marshal(map[string]Kind{"kind": Kind(0)}); err == nil {
		t.Errorf("yaml.Marshal(invalid kind) succeeded")
	}
}
