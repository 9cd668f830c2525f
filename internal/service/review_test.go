package service

import "testing"

func TestReviewInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   ReviewInput
		wantErr bool
	}{
		{name: "empty input is valid", input: ReviewInput{}},
		{name: "full valid input", input: ReviewInput{
			Rating:     4,
			PriceValue: 3,
			Sillage:    5,
			Longevity:  1,
			GenderVote: "unisex",
			SeasonVote: "summer,winter",
		}},
		{name: "rating too high", input: ReviewInput{Rating: 6}, wantErr: true},
		{name: "sillage below scale", input: ReviewInput{Sillage: 0.5}, wantErr: true},
		{name: "negative longevity", input: ReviewInput{Longevity: -1}, wantErr: true},
		{name: "unknown gender", input: ReviewInput{GenderVote: "other"}, wantErr: true},
		{name: "unknown season token", input: ReviewInput{SeasonVote: "summer,monsoon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
