package envfile

import "testing"

func TestParseDotEnv(t *testing.T) {
	content := []byte("# comment\nexport FOO=bar\nQUOTED=\"a\\nb\"\nSINGLE='x y'\nPLAIN= leading\n")
	m, err := Parse(content, "app.env")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{
		"FOO":    "bar",
		"QUOTED": "a\nb",
		"SINGLE": "x y",
		"PLAIN":  "leading",
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("key %s = %q, want %q", k, m[k], v)
		}
	}
}

func TestParseDotEnvErrors(t *testing.T) {
	cases := []string{
		"NOEQ\n",
		"1BAD=x\n",
		"Q=\"unterminated\n",
		"E=\"dangling\\\"",
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c), "x.env"); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}

func TestParseJSONAndYAML(t *testing.T) {
	m, err := Parse([]byte(`{"A":"1","B":true,"C":2}`), "v.json")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if m["A"] != "1" || m["B"] != "true" || m["C"] != "2" {
		t.Errorf("unexpected json map: %v", m)
	}
	m, err = Parse([]byte("A: x\nB: false\n"), "v.yaml")
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if m["A"] != "x" || m["B"] != "false" {
		t.Errorf("unexpected yaml map: %v", m)
	}
	if _, err := Parse([]byte(`{"A":null}`), "v.json"); err == nil {
		t.Error("expected error for null value")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(map[string]string{"GOOD_KEY": "value"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Validate(map[string]string{"bad-key": "v"}); err == nil {
		t.Error("expected error for invalid key")
	}
	if err := Validate(map[string]string{"K": "a\x00b"}); err == nil {
		t.Error("expected error for NUL byte")
	}
	if err := Validate(map[string]string{"K": "a\x1fb"}); err == nil {
		t.Error("expected error for control char")
	}
}
