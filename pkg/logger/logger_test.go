package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit_AttachesServiceField(t *testing.T) {
	Reset()
	var buf bytes.Buffer

	log := Init(Options{Level: "debug", Output: &buf})
	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"service":"hr-system"`) {
		t.Fatalf("service field missing: %s", buf.String())
	}
}

func TestInit_ServiceOverride(t *testing.T) {
	Reset()
	var buf bytes.Buffer

	log := Init(Options{Output: &buf, Service: "hr-worker"})
	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"service":"hr-worker"`) {
		t.Fatalf("service override not applied: %s", buf.String())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("Get before Init must panic")
		}
	}()
	Get()
}
