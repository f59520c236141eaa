package encoding

import (
	"encoding/json"
	"testing"
)

func TestBase64Bytes_MarshalJSON(t *testing.T) {
	data := Base64Bytes([]byte("hello world"))

	b, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}

	expected := `"aGVsbG8gd29ybGQ="`
	if string(b) != expected {
		t.Errorf("MarshalJSON = %s; want %s", b, expected)
	}
}

func TestBase64Bytes_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "valid base64",
			input: `"aGVsbG8gd29ybGQ="`,
			want:  []byte("hello world"),
		},
		{
			name:  "empty base64",
			input: `""`,
			want:  []byte{},
		},
		{
			name:  "null",
			input: `null`,
			want:  nil,
		},
		{
			name:    "invalid - number",
			input:   `123`,
			wantErr: true,
		},
		{
			name:    "invalid - bad base64",
			input:   `"!!!"`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var data Base64Bytes
			err := json.Unmarshal([]byte(tc.input), &data)

			if tc.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("UnmarshalJSON error: %v", err)
			}

			if string(data) != string(tc.want) {
				t.Errorf("UnmarshalJSON = %v; want %v", data, tc.want)
			}
		})
	}
}

func TestBase64Bytes_String(t *testing.T) {
	data := Base64Bytes([]byte("hello"))
	expected := "aGVsbG8="

	if data.String() != expected {
		t.Errorf("String() = %s; want %s", data.String(), expected)
	}
}

func TestBase64Bytes_InStruct(t *testing.T) {
	type entry struct {
		Key   Base64Bytes `json:"key"`
		Value Base64Bytes `json:"value"`
	}

	in := entry{
		Key:   Base64Bytes([]byte{0x00, 0x01, 0xff}),
		Value: Base64Bytes([]byte("payload")),
	}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var out entry
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if string(out.Key) != string(in.Key) {
		t.Errorf("Key = %v; want %v", out.Key, in.Key)
	}
	if string(out.Value) != string(in.Value) {
		t.Errorf("Value = %v; want %v", out.Value, in.Value)
	}
}
