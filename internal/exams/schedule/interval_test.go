package schedule

import "testing"

func TestNewTimeSpan(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		duration  int
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{
			name:      "morning exam",
			startTime: "09:00",
			duration:  120,
			wantStart: 540,
			wantEnd:   660,
		},
		{
			name:      "midnight start",
			startTime: "00:00",
			duration:  60,
			wantStart: 0,
			wantEnd:   60,
		},
		{
			name:      "ends exactly at midnight",
			startTime: "22:00",
			duration:  120,
			wantStart: 1320,
			wantEnd:   1440,
		},
		{
			name:      "crosses midnight",
			startTime: "23:00",
			duration:  120,
			wantErr:   true,
		},
		{
			name:      "zero duration",
			startTime: "09:00",
			duration:  0,
			wantErr:   true,
		},
		{
			name:      "negative duration",
			startTime: "09:00",
			duration:  -30,
			wantErr:   true,
		},
		{
			name:      "hour out of range",
			startTime: "24:00",
			duration:  60,
			wantErr:   true,
		},
		{
			name:      "minute out of range",
			startTime: "09:60",
			duration:  60,
			wantErr:   true,
		},
		{
			name:      "garbage input",
			startTime: "morning",
			duration:  60,
			wantErr:   true,
		},
		{
			name:      "missing minutes",
			startTime: "09",
			duration:  60,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := NewTimeSpan(tt.startTime, tt.duration)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewTimeSpan(%q, %d) expected error, got %v", tt.startTime, tt.duration, span)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTimeSpan(%q, %d) unexpected error: %v", tt.startTime, tt.duration, err)
			}
			if span.Start != tt.wantStart || span.End != tt.wantEnd {
				t.Errorf("NewTimeSpan(%q, %d) = [%d, %d), want [%d, %d)",
					tt.startTime, tt.duration, span.Start, span.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestTimeSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeSpan
		b    TimeSpan
		want bool
	}{
		{
			name: "partial overlap",
			a:    TimeSpan{Start: 540, End: 660},
			b:    TimeSpan{Start: 600, End: 720},
			want: true,
		},
		{
			name: "containment",
			a:    TimeSpan{Start: 540, End: 720},
			b:    TimeSpan{Start: 600, End: 660},
			want: true,
		},
		{
			name: "identical spans",
			a:    TimeSpan{Start: 540, End: 660},
			b:    TimeSpan{Start: 540, End: 660},
			want: true,
		},
		{
			name: "back to back",
			a:    TimeSpan{Start: 540, End: 660},
			b:    TimeSpan{Start: 660, End: 780},
			want: false,
		},
		{
			name: "back to back reversed",
			a:    TimeSpan{Start: 660, End: 780},
			b:    TimeSpan{Start: 540, End: 660},
			want: false,
		},
		{
			name: "disjoint",
			a:    TimeSpan{Start: 540, End: 600},
			b:    TimeSpan{Start: 720, End: 780},
			want: false,
		},
		{
			name: "single minute overlap",
			a:    TimeSpan{Start: 540, End: 661},
			b:    TimeSpan{Start: 660, End: 780},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("(%v).Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("(%v).Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestTimeSpanString(t *testing.T) {
	span := TimeSpan{Start: 540, End: 1440}
	if got := span.String(); got != "09:00-24:00" {
		t.Errorf("String() = %q, want %q", got, "09:00-24:00")
	}
}
