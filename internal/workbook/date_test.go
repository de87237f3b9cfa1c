package workbook

import (
	"testing"
	"time"
)

func TestSerialToTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		serial float64
		want   string
		ok     bool
	}{
		{name: "first day", serial: 1, want: "1900-01-01 00:00:00", ok: true},
		{name: "day before phantom leap day", serial: 59, want: "1900-02-28 00:00:00", ok: true},
		{name: "phantom leap day", serial: 60, ok: false},
		{name: "day after phantom leap day", serial: 61, want: "1900-03-01 00:00:00", ok: true},
		{name: "2015-03-01", serial: 42064, want: "2015-03-01 00:00:00", ok: true},
		{name: "noon", serial: 42064.5, want: "2015-03-01 12:00:00", ok: true},
		{name: "rounds up to next day", serial: 42064.999999, want: "2015-03-02 00:00:00", ok: true},
		{name: "last representable day", serial: 2958465, want: "9999-12-31 00:00:00", ok: true},
		{name: "past 9999", serial: 2958466, ok: false},
		{name: "time only", serial: 0.5, ok: false},
		{name: "zero", serial: 0, ok: false},
		{name: "negative", serial: -1, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := SerialToTime(tt.serial)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if s := got.Format(time.DateTime); s != tt.want {
				t.Errorf("SerialToTime(%v) = %s, want %s", tt.serial, s, tt.want)
			}
		})
	}
}
