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

package vcard_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model"
	"dirpx.dev/vcardlint/vccore/model/vcard"
)

// ok marks a table case that must validate.
const ok vcerrors.Kind = 0

func TestParseProperty(t *testing.T) {
	tests := []struct {
		line string
		want vcerrors.Kind
	}{
		// decomposition
		{"FN", vcerrors.ItemCount},
		{"FOO:bar", vcerrors.Naming},
		{"x-abc:1", ok},
		{"FN;TYPE:x", vcerrors.ItemCount},
		{"FN;TY_PE=x:y", vcerrors.Naming},
		{"FN;X-A=:y", vcerrors.Value},
		{"FN;X-A=a\"b:y", vcerrors.Value},
		{"FN;X-A=\"a b\":y", ok},
		{"FN;X-A=\"a:b\":y", vcerrors.Value},
		{"FN;X-A=a:b:c", ok},
		{"FN:a\"b", ok},
		{"FN:日本", vcerrors.Value},

		// VERSION, BEGIN, END, PROFILE, NAME
		{"VERSION:3.0", ok},
		{"VERSION;X-A=b:3.0", vcerrors.ItemCount},
		{"VERSION:3.0,4.0", vcerrors.ItemCount},
		{"VERSION:4.0", vcerrors.Value},
		{"BEGIN:vcard", ok},
		{"BEGIN:VCALENDAR", vcerrors.Value},
		{"END:VCARD;x", vcerrors.ItemCount},
		{"PROFILE:VCARD", ok},
		{"PROFILE:x", vcerrors.Value},
		{"NAME:Contact list", ok},
		{"NAME;X-A=b:Contact list", vcerrors.ItemCount},

		// FN, TITLE, ROLE, MAILER
		{"FN;LANGUAGE=en-US:John", ok},
		{"FN;LANGUAGE=e1:John", vcerrors.Value},
		{"FN;LANGUAGE=en,de:John", vcerrors.Value},
		{"FN;VALUE=ptext:J", ok},
		{"FN;VALUE=uri:J", vcerrors.Value},
		{"FN;X-FOO=bar:J", ok},
		{"FN;FOO=bar:J", vcerrors.Naming},
		{"FN;X-FOO=a,b:J", vcerrors.Value},
		{"FN:a,b", vcerrors.ItemCount},
		{"FN:a;b", vcerrors.ItemCount},
		{"TITLE:Director\\, Research", ok},
		{"ROLE:Programmer", ok},
		{"MAILER:PigeonMail 2.1", ok},

		// N, NICKNAME
		{"N:Doe;John;;;", ok},
		{"N:Doe;John;;", vcerrors.ItemCount},
		{"N:Stevenson;John;Philip,Paul;Dr.;Jr.,M.D.,A.C.P.", ok},
		{"NICKNAME:Jim,Jimmie", ok},
		{"NICKNAME:Jim;Jimmie", vcerrors.ItemCount},

		// ADR, LABEL
		{"ADR;TYPE=home:;;1 Main St;Town;ST;12345;US", ok},
		{"ADR;TYPE=work:;;;", vcerrors.ItemCount},
		{"ADR;TYPE=bogus:;;;;;;", vcerrors.Value},
		{"ADR;TYPE=DOM,Home:;;;;;;", ok},
		{"ADR;LANGUAGE=en:;;;;;;", ok},
		{"ADR;FOO=x:;;;;;;", vcerrors.Naming},
		{"LABEL;TYPE=dom:1 Main St", ok},
		{"LABEL;TYPE=bogus:1 Main St", vcerrors.Value},

		// TEL, EMAIL
		{"TEL;TYPE=cell:+1-555-0100", ok},
		{"TEL;TYPE=CELL,voice:+1-555-0100", ok},
		{"TEL;TYPE=bogus:+1-555-0100", vcerrors.Value},
		{"TEL;X-A=b:+1", vcerrors.Naming},
		{"TEL:+1,+2", vcerrors.ItemCount},
		{"EMAIL;TYPE=internet:jdoe@example.org", ok},
		{"EMAIL;TYPE=bogus:jdoe@example.org", ok},
		{"EMAIL;FOO=bar:jdoe@example.org", vcerrors.Naming},

		// URL, AGENT, SOURCE
		{"URL:https://example.org/", ok},
		{"URL:notauri", vcerrors.Value},
		{"URL;X-A=b:https://example.org/", vcerrors.ItemCount},
		{"AGENT;VALUE=uri:CID:JQPUBLIC.part3@example.com", ok},
		{"AGENT;VALUE=text:x", vcerrors.Value},
		{"AGENT;TYPE=x:y", vcerrors.Naming},
		{"AGENT:BEGIN:VCARD\\nFN:Joe Friday\\nEND:VCARD\\n", ok},
		{"SOURCE:ldap://ldap.example.com/cn=Babs%20Jensen", ok},
		{"SOURCE;CONTEXT=word:http://example.org/", ok},
		{"SOURCE;VALUE=uri;CONTEXT=word:http://example.org/", vcerrors.Value},
		{"SOURCE;VALUE=text:http://example.org/", vcerrors.Value},
		{"SOURCE;FOO=x:http://example.org/", vcerrors.Naming},
		{"SOURCE:nope", vcerrors.Value},

		// BDAY, TZ, GEO
		{"BDAY:1996-04-15", ok},
		{"BDAY:19960415", ok},
		{"BDAY:1996-02-30", vcerrors.Value},
		{"BDAY;VALUE=date:1996-04-15", vcerrors.ItemCount},
		{"TZ:-05:00", ok},
		{"TZ:Z", ok},
		{"TZ:+25:00", vcerrors.Value},
		{"GEO:37.386013;-122.082932", ok},
		{"GEO:37.386013", vcerrors.ItemCount},
		{"GEO:north;south", vcerrors.Value},
		{"GEO:1,2;3", vcerrors.ItemCount},

		// PHOTO, LOGO
		{"PHOTO;VALUE=uri:http://www.example.com/pub/photos/jqpublic.gif", ok},
		{"PHOTO;ENCODING=b;TYPE=JPEG:MIICajCCAdOgAwIBAgICBEUwDQYJKoZIhvcN+/A=", ok},
		{"PHOTO:abc", vcerrors.ItemCount},
		{"PHOTO;TYPE=JPEG:abc", vcerrors.ItemCount},
		{"PHOTO;ENCODING=b;VALUE=uri:http://example.org/", vcerrors.Value},
		{"PHOTO;ENCODING=base64:abc", vcerrors.Value},
		{"PHOTO;VALUE=uri:notauri", vcerrors.Value},
		{"PHOTO;FOO=x:abc", vcerrors.Naming},
		{"LOGO;VALUE=uri:http://www.example.com/pub/logos/abccorp.jpg", ok},
		{"LOGO;ENCODING=b;VALUE=uri:http://example.org/", vcerrors.Value},

		// names without a dedicated rule pass through
		{"NOTE:anything goes", ok},
		{"ORG:ABC\\, Inc.;North American Division;Marketing", ok},
		{"X-ABC;FOO=bar:whatever", ok},
		{"CATEGORIES:TRAVEL AGENT,INTERNET", ok},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p, err := vcard.ParseProperty(tt.line+"\r\n", nil)
			if tt.want == ok {
				require.NoError(t, err)
				require.NotNil(t, p)
				return
			}
			require.Error(t, err)
			kind, _ := vcerrors.KindOf(err)
			assert.Equal(t, tt.want, kind, "error: %v", err)
			line, found := vcerrors.ContextOf(err).Get(vcerrors.KeyPropertyLine)
			assert.True(t, found)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestLookupRule(t *testing.T) {
	for _, name := range []string{"VERSION", "n", "Tel", "PHOTO"} {
		_, dedicated := vcard.LookupRule(name)
		assert.True(t, dedicated, name)
	}
	for _, name := range []string{"NOTE", "ORG", "X-CUSTOM", "UID"} {
		rule, dedicated := vcard.LookupRule(name)
		assert.False(t, dedicated, name)
		require.NotNil(t, rule)
		assert.NoError(t, rule(nil, nil), name)
	}
}

func TestParseProperty_Structure(t *testing.T) {
	p, err := vcard.ParseProperty("tel;TYPE=work;type=voice,work:+1-555-0100\r\n", nil)
	require.NoError(t, err)

	assert.Equal(t, "TEL", p.Name())
	assert.Equal(t, vcard.Params{"TYPE": {"voice", "work"}}, p.Params())
	assert.Equal(t, [][]string{{"+1-555-0100"}}, p.Values())
	assert.Equal(t, "+1-555-0100", p.Value())
	assert.Equal(t, "TEL;TYPE=voice,work:+1-555-0100", p.String())
}

func TestParseProperty_ColonsRejoined(t *testing.T) {
	p, err := vcard.ParseProperty("URL:http://example.org:8080/a\r\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org:8080/a", p.Value())
}

func TestParseProperty_Errors(t *testing.T) {
	_, err := vcard.ParseProperty("VERSION:2.1\r\n", nil)
	require.Error(t, err)

	var e *vcerrors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, vcerrors.Value, e.Kind)
	assert.Contains(t, e.Message, `expected "3.0"`)

	v, _ := e.Context.Get(vcerrors.KeyProperty)
	assert.Equal(t, "VERSION", v)
	v, _ = e.Context.Get(vcerrors.KeyParsedVersion)
	assert.Equal(t, "2.1.0", v)
	v, _ = e.Context.Get(vcerrors.KeyPropertyLine)
	assert.Equal(t, "VERSION:2.1", v)
}

func TestParseProperty_Warnings(t *testing.T) {
	tests := []struct {
		line string
		want []vcard.WarningCode
	}{
		{"TEL;TYPE=voice:+1", []vcard.WarningCode{vcard.WarnDefaultType}},
		{"TEL;TYPE=VOICE:+1", []vcard.WarningCode{vcard.WarnDefaultType}},
		{"TEL;TYPE=voice,cell:+1", nil},
		{"EMAIL;TYPE=internet:a@example.org", []vcard.WarningCode{vcard.WarnDefaultType}},
		{"EMAIL;TYPE=bogus:a@example.org", []vcard.WarningCode{vcard.WarnUnknownEmailType}},
		{"ADR;TYPE=intl,postal,parcel,work:;;;;;;", []vcard.WarningCode{vcard.WarnDefaultType}},
		{"LABEL;TYPE=intl,postal,parcel,work:x", []vcard.WarningCode{vcard.WarnDefaultType}},
		{"N:Doe;John Paul;;;", []vcard.WarningCode{vcard.WarnMultipleNames}},
		{"N:;John Paul;;;", nil},
		{"N:Doe;John;;;", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			var w vcard.Warnings
			_, err := vcard.ParseProperty(tt.line+"\r\n", &w)
			require.NoError(t, err)

			var codes []vcard.WarningCode
			for _, warning := range w.List() {
				codes = append(codes, warning.Code)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestNewProperty(t *testing.T) {
	p, err := vcard.NewProperty("tel", vcard.Params{"type": {"cell"}}, [][]string{{"+1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "TEL;TYPE=cell:+1", p.String())

	_, err = vcard.NewProperty("TEL", vcard.Params{"TYPE": {"bogus"}}, [][]string{{"+1"}}, nil)
	assert.True(t, vcerrors.IsKind(err, vcerrors.Value))

	_, err = vcard.NewProperty("", nil, [][]string{{"x"}}, nil)
	assert.True(t, vcerrors.IsKind(err, vcerrors.Naming))

	_, err = vcard.NewProperty("NOTE", nil, nil, nil)
	assert.True(t, vcerrors.IsKind(err, vcerrors.ItemCount))

	_, err = vcard.NewProperty("NOTE", vcard.Params{"X-A": {}}, [][]string{{"x"}}, nil)
	assert.True(t, vcerrors.IsKind(err, vcerrors.ItemCount))
}

func TestProperty_Model(t *testing.T) {
	p, err := vcard.ParseProperty("TEL;TYPE=cell:+1-555-0100\r\n", nil)
	require.NoError(t, err)

	assert.NoError(t, p.Validate())
	assert.Equal(t, "Property", p.TypeName())
	assert.False(t, p.IsZero())
	assert.True(t, (&vcard.Property{}).IsZero())
	assert.NotContains(t, p.Redacted(), "555")
	assert.Contains(t, p.Redacted(), "TEL")
	assert.Equal(t, p.Redacted(), model.SafeString(p, false))
}

func TestProperty_JSON(t *testing.T) {
	p, err := vcard.ParseProperty("TEL;TYPE=cell:+1-555-0100\r\n", nil)
	require.NoError(t, err)

	data, err := model.ToJSON(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"TEL","params":{"TYPE":["cell"]},"values":[["+1-555-0100"]]}`, string(data))

	var back vcard.Property
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.String(), back.String())

	var bad vcard.Property
	err = json.Unmarshal([]byte(`{"name":"TEL","params":{"TYPE":["bogus"]},"values":[["1"]]}`), &bad)
	assert.True(t, vcerrors.IsKind(err, vcerrors.Value), "error: %v", err)
}

func TestProperty_YAML(t *testing.T) {
	p, err := vcard.ParseProperty("N:Doe;John;;;\r\n", nil)
	require.NoError(t, err)

	data, err := yaml.Marshal(p)
	require.NoError(t, err)

	var back *vcard.Property
	require.NoError(t, model.FromYAML(data, &back))
	assert.Equal(t, p.Values(), back.Values())

	err = yaml.Unmarshal([]byte("name: N\nvalues: [[Doe]]\n"), &back)
	assert.True(t, vcerrors.IsKind(err, vcerrors.ItemCount), "error: %v", err)
}

func TestParams(t *testing.T) {
	p := vcard.Params{}
	p.Merge("type", "work", "voice")
	p.Merge("TYPE", "work", "pref")
	p.Merge("x-a", "1")

	assert.Equal(t, []string{"TYPE", "X-A"}, p.Names())
	assert.Equal(t, []string{"pref", "voice", "work"}, p.Values("type"))
	assert.True(t, p.Has("Type"))
	assert.True(t, p.Is("TYPE", "WORK", "Voice", "pref"))
	assert.False(t, p.Is("TYPE", "work"))
	assert.Equal(t, "TYPE=pref,voice,work;X-A=1", p.String())

	c := p.Clone()
	c.Merge("TYPE", "cell")
	assert.NotContains(t, p.Values("TYPE"), "cell")
}
