package mappaint

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	type args struct {
		text string
	}
	tests := []struct {
		name    string
		args    args
		want    color.RGBA
		wantErr bool
	}{
		{
			"6 digit color",
			args{"#1a9850"},
			color.RGBA{0x1a, 0x98, 0x50, 0xff},
			false,
		},
		{
			"uppercase digits",
			args{"#1A9850"},
			color.RGBA{0x1a, 0x98, 0x50, 0xff},
			false,
		},
		{
			"3 digit shorthand",
			args{"#fff"},
			color.RGBA{0xff, 0xff, 0xff, 0xff},
			false,
		},
		{
			"8 digits with alpha",
			args{"#1a985080"},
			color.RGBA{0x1a, 0x98, 0x50, 0x80},
			false,
		},
		{
			"missing the leading #",
			args{"1a9850"},
			color.RGBA{},
			true,
		},
		{
			"wrong number of digits",
			args{"#1a98"},
			color.RGBA{},
			true,
		},
		{
			"not hex digits",
			args{"#zzzzzz"},
			color.RGBA{},
			true,
		},
		{
			"empty string",
			args{""},
			color.RGBA{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.args.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHexColor() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseHexColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHexString(t *testing.T) {
	type args struct {
		c color.RGBA
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			"opaque color",
			args{color.RGBA{0x1a, 0x98, 0x50, 0xff}},
			"#1a9850",
		},
		{
			"translucent color keeps its alpha",
			args{color.RGBA{0x1a, 0x98, 0x50, 0x80}},
			"#1a985080",
		},
		{
			"black",
			args{color.RGBA{0, 0, 0, 0xff}},
			"#000000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexString(tt.args.c); got != tt.want {
				t.Errorf("HexString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseHexColorRoundTrip(t *testing.T) {
	for _, text := range []string{"#1a9850", "#d73027", "#00000080"} {
		c, err := ParseHexColor(text)
		if err != nil {
			t.Fatalf("ParseHexColor(%q) error = %v", text, err)
		}
		if got := HexString(c); got != text {
			t.Errorf("HexString(ParseHexColor(%q)) = %q", text, got)
		}
	}
}
