package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCivilDate_Unmarshal(t *testing.T) {
	var d CivilDate
	require.NoError(t, json.Unmarshal([]byte(`"1995-03-12"`), &d))
	assert.Equal(t, 1995, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 12, d.Day())
}

func TestCivilDate_UnmarshalNull(t *testing.T) {
	var d CivilDate
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
	assert.Nil(t, d.TimePtr())
}

func TestCivilDate_UnmarshalEmptyString(t *testing.T) {
	var d CivilDate
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}

func TestCivilDate_UnmarshalRejectsOtherLayouts(t *testing.T) {
	var d CivilDate
	assert.Error(t, json.Unmarshal([]byte(`"12.03.1995"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"1995-03-12T00:00:00Z"`), &d))
}

func TestCivilDate_Marshal(t *testing.T) {
	data, err := json.Marshal(NewCivilDate(2024, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-30"`, string(data))

	data, err = json.Marshal(CivilDate{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestCandidateDocument_DecodeFullPayload(t *testing.T) {
	payload := `{
		"personal_info": {
			"full_name": "Jan Kowalski",
			"date_of_birth": "1995-03-12",
			"nationality": "Polish",
			"contact": {"email": "jan@example.com", "phone": "+48", "address": "Warszawa"}
		},
		"work_experience": [
			{"job_title": "Developer", "company": "Acme", "start_date": "2018-01-01", "end_date": "2021-06-30"},
			{"job_title": "Senior", "company": "Globex", "start_date": "2021-07-01", "end_date": null}
		],
		"military_experience": [
			{"rank": "Corporal", "branch": "Land Forces", "start_date": "2015-07-01", "duties": ["signals"]}
		]
	}`

	var doc CandidateDocument
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))

	assert.Equal(t, "Jan Kowalski", doc.PersonalInfo.FullName)
	require.Len(t, doc.WorkExperience, 2)
	require.NotNil(t, doc.WorkExperience[0].EndDate)
	assert.Equal(t, 2021, doc.WorkExperience[0].EndDate.Year())
	assert.Nil(t, doc.WorkExperience[1].EndDate)
	require.Len(t, doc.MilitaryExperience, 1)
	assert.Nil(t, doc.MilitaryExperience[0].EndDate)
}
