package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.yaml", "-e", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.yaml"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.yaml", "-e", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.yaml"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--config=first.yaml", "-c", "second.yaml", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=first.yaml", "-c", "second.yaml"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-e", "localhost:8080", "-c", "conf.yaml", "--other", "x"},
			allowedFlags: []string{"-c", "-e"},
			want:         []string{"-e", "localhost:8080", "-c", "conf.yaml"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "do not treat next dash-starting token as value",
			args:         []string{"-c", "--config=alt.yaml"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "--config=alt.yaml"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-c", "one.yaml", "-c", "two.yaml"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.yaml", "-c", "two.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
