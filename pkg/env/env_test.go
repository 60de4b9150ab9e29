package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       error
		want        string
	}{
		{
			"missing environment variable",
			&Error{Name: "API_URL"},
			`unable to access environment variable: API_URL`,
		},
		{
			"environment variable with invalid value",
			&TypeError{Name: "QUERY_ENCODING"},
			`unable to convert environment variable: QUERY_ENCODING`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			assert.EqualError(t, tc.given, tc.want)
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		expected    time.Duration
		error       bool
		want        string
	}{
		{
			"valid duration value with unit",
			"5s",
			time.Duration(5 * time.Second),
			false,
			``,
		},
		{
			"valid duration value without unit",
			"5",
			time.Duration(5 * time.Second),
			false,
			``,
		},
		{
			"valid negative duration value without unit",
			"-5",
			time.Duration(5 * time.Second),
			false,
			``,
		},
		{
			"valid negative duration value with unit",
			"-5s",
			time.Duration(5 * time.Second),
			false,
			``,
		},
		{
			"valid duration value in milliseconds",
			"250ms",
			time.Duration(250 * time.Millisecond),
			false,
			``,
		},
		{
			"invalid floating point duration value without unit",
			"1.234",
			time.Duration(0),
			true,
			`unable to parse duration: time: missing unit in duration "1.234"`,
		},
		{
			"invalid duration value",
			"test",
			time.Duration(0),
			true,
			`unable to parse duration: time: invalid duration "test"`,
		},
		{
			"invalid empty duration value",
			"",
			time.Duration(0),
			true,
			`unable to parse duration: time: invalid duration ""`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			actual, err := ParseDuration(tc.given)

			if tc.error {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.want)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.expected, actual)
		})
	}
}
