package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    DisputeState
		to      DisputeState
		wantErr error
	}{
		{name: "normal to disputed", from: DisputeStateNormal, to: DisputeStateDisputed},
		{name: "disputed to normal", from: DisputeStateDisputed, to: DisputeStateNormal},
		{name: "disputed to charged back", from: DisputeStateDisputed, to: DisputeStateChargedBack},
		{name: "normal straight to charged back", from: DisputeStateNormal, to: DisputeStateChargedBack, wantErr: ErrInvalidDisputeState},
		{name: "normal to normal", from: DisputeStateNormal, to: DisputeStateNormal, wantErr: ErrInvalidDisputeState},
		{name: "charged back is terminal", from: DisputeStateChargedBack, to: DisputeStateNormal, wantErr: ErrInvalidDisputeState},
		{name: "charged back cannot be redisputed", from: DisputeStateChargedBack, to: DisputeStateDisputed, wantErr: ErrInvalidDisputeState},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.from, tc.to)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestIsRejection(t *testing.T) {
	for _, sentinel := range rejections {
		assert.True(t, IsRejection(fmt.Errorf("applyRecord: %w", sentinel)), sentinel.Error())
	}

	assert.False(t, IsRejection(nil))
	assert.False(t, IsRejection(errors.New("disk full")))
}
