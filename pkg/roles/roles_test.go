package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CanonicalTokens(t *testing.T) {
	for _, token := range []string{
		"liturgist", "liturgist2", "backup", "backup2",
		"greeter1", "greeter2",
		"volunteer1", "volunteer2", "volunteer3", "volunteer4",
		"attendance",
	} {
		role, err := Parse(token)
		require.NoError(t, err)
		assert.Equal(t, token, role.String())
	}
}

func TestParse_CaseAndWhitespaceVariants(t *testing.T) {
	variants := []string{"Liturgist", "liturgist", " LITURGIST "}

	for _, v := range variants {
		role, err := Parse(v)
		require.NoError(t, err, "variant %q", v)
		assert.Equal(t, Liturgist, role)
	}
}

func TestParse_LegacyAliases(t *testing.T) {
	cases := map[string]Role{
		"Second Liturgist": Liturgist2,
		"Backup Liturgist": Backup,
		"Backup":           Backup,
		"Second Backup":    Backup2,
		"backup2":          Backup2,
		"Attendance":       Attendance,
	}

	for input, expected := range cases {
		role, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, expected, role)
	}
}

func TestParse_Unrecognized(t *testing.T) {
	_, err := Parse("usher")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestVolunteerIndex(t *testing.T) {
	assert.Equal(t, 0, VolunteerIndex(Volunteer1))
	assert.Equal(t, 3, VolunteerIndex(Volunteer4))
	assert.Equal(t, -1, VolunteerIndex(Liturgist))
}

func TestPromotableHead(t *testing.T) {
	assert.True(t, PromotableHead(Volunteer1))
	assert.True(t, PromotableHead(Volunteer2))
	assert.False(t, PromotableHead(Volunteer3))
	assert.False(t, PromotableHead(Volunteer4))
	assert.False(t, PromotableHead(Greeter1))
}
