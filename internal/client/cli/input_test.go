package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.HasPrefix(out.String(), "Name?") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	if _, err := GetSimpleText(rdr(""), "Name?", &out); err == nil {
		t.Fatal("expected EOF error")
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	if err != nil || string(pw) != "s3cret" {
		t.Fatalf("got %q, err=%v", pw, err)
	}

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	if _, err := GetPassword(&out); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetAmount(t *testing.T) {
	var out bytes.Buffer

	v, ok, err := GetAmount(rdr("12.5\n"), "Amount", &out)
	if err != nil || !ok || v != 12.5 {
		t.Fatalf("got %v %v %v", v, ok, err)
	}

	_, ok, err = GetAmount(rdr("\n"), "Amount", &out)
	if err != nil || ok {
		t.Fatalf("empty answer: ok=%v err=%v", ok, err)
	}

	if _, _, err = GetAmount(rdr("ten\n"), "Amount", &out); err == nil {
		t.Fatal("expected parse error")
	}
}
