package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
)

func TestAdjust(t *testing.T) {
	s := sampleSchedule("2024-12-25")

	got, err := s.Adjust(Adjustments{Fajr: 2, Maghrib: -1, Isha: 10})
	require.NoError(t, err)

	assert.Equal(t, "06:00", got.Fajr)
	assert.Equal(t, "07:10", got.Sunrise)
	assert.Equal(t, "19:10", got.Maghrib)
	assert.Equal(t, "20:36", got.Isha)
	assert.Equal(t, s.Source, got.Source)
	// The original value is untouched.
	assert.Equal(t, "05:58", s.Fajr)
}

func TestAdjust_Zero(t *testing.T) {
	s := sampleSchedule("2024-12-25")
	got, err := s.Adjust(Adjustments{})
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestAdjust_BreaksOrder(t *testing.T) {
	s := sampleSchedule("2024-12-25")
	_, err := s.Adjust(Adjustments{Sunrise: -60, Fajr: 30})
	assert.Error(t, err)
}

func TestSchedule_ValidateRequiresPaddedClock(t *testing.T) {
	s := sampleSchedule("2024-12-25")
	require.NoError(t, s.Validate())

	for _, bad := range []string{"5:30", "05:3", "0530", "05-30", "24:00"} {
		s := sampleSchedule("2024-12-25")
		s.Fajr = bad
		assert.Error(t, s.Validate(), bad)
	}
}

func TestAdjustments_Validate(t *testing.T) {
	assert.NoError(t, Adjustments{Fajr: 60, Isha: -60}.Validate())
	assert.Error(t, Adjustments{Asr: 61}.Validate())
	assert.Error(t, Adjustments{Dhuhr: -90}.Validate())
}

func TestStatus(t *testing.T) {
	s := sampleSchedule("2024-12-25")
	at := func(hh, mm int) time.Time {
		return time.Date(2024, 12, 25, hh, mm, 0, 0, jakim.Location())
	}

	cases := []struct {
		name    string
		now     time.Time
		current Name
		next    Name
	}{
		{"before fajr", at(4, 0), "", Fajr},
		{"at fajr", at(5, 58), Fajr, Sunrise},
		{"midday", at(13, 30), Dhuhr, Asr},
		{"evening", at(19, 30), Maghrib, Isha},
		{"after isha", at(23, 0), Isha, ""},
		// 05:20 UTC is 13:20 in Kuala Lumpur.
		{"utc input", time.Date(2024, 12, 25, 5, 20, 0, 0, time.UTC), Dhuhr, Asr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Status(s, tc.now)
			require.NoError(t, err)

			if tc.current == "" {
				assert.Nil(t, st.Current)
			} else {
				require.NotNil(t, st.Current)
				assert.Equal(t, tc.current, st.Current.Name)
			}
			if tc.next == "" {
				assert.Nil(t, st.Next)
			} else {
				require.NotNil(t, st.Next)
				assert.Equal(t, tc.next, st.Next.Name)
			}
		})
	}
}

func TestMoments(t *testing.T) {
	m, err := sampleSchedule("2024-12-25").Moments()
	require.NoError(t, err)
	require.Len(t, m, 6)
	assert.True(t, time.Date(2024, 12, 25, 20, 26, 0, 0, jakim.Location()).Equal(m[5].At))

	_, err = sampleSchedule("bad").Moments()
	assert.Error(t, err)
}
