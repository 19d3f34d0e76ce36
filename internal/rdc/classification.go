package rdc

import "fmt"

// BinType is the evolutionary or mass-transfer state of a triple or binary.
type BinType string

const (
	BinUnknown                  BinType = "unknown"
	BinMerger                   BinType = "merger"
	BinDisintegrated            BinType = "disintegrated"
	BinDynamicalInstability     BinType = "dynamical_instability"
	BinDetached                 BinType = "detached"
	BinContact                  BinType = "contact"
	BinCollision                BinType = "collision"
	BinSemisecular              BinType = "semisecular"
	BinRLOF                     BinType = "rlof" // stopping conditions only
	BinStableMassTransfer       BinType = "stable_mass_transfer"
	BinCommonEnvelope           BinType = "common_envelope"
	BinCEEnergyBalance          BinType = "common_envelope_energy_balance"
	BinCEE                      BinType = "ce_e"
	BinCEAlpha                  BinType = "ce_alpha"
	BinCEAngularMomentumBalance BinType = "common_envelope_angular_momentum_balance"
	BinCEJ                      BinType = "ce_J"
	BinCEGamma                  BinType = "ce_gamma"
	BinDoubleCommonEnvelope     BinType = "double_common_envelope"
	BinDCE                      BinType = "dce"
)

var binTypeCodes = map[BinType]int64{
	BinUnknown:                  0,
	BinMerger:                   1,
	BinDisintegrated:            2,
	BinDynamicalInstability:     3,
	BinDetached:                 4,
	BinContact:                  5,
	BinCollision:                6,
	BinSemisecular:              7,
	BinRLOF:                     8,
	BinStableMassTransfer:       9,
	BinCommonEnvelope:           10,
	BinCEEnergyBalance:          11,
	BinCEE:                      12,
	BinCEAlpha:                  13,
	BinCEAngularMomentumBalance: 14,
	BinCEJ:                      15,
	BinCEGamma:                  16,
	BinDoubleCommonEnvelope:     17,
	BinDCE:                      18,
}

// Code returns the integer written to the table for the tag. Tags outside
// the table are an error, never a default.
func (b BinType) Code() (int64, error) {
	c, ok := binTypeCodes[b]
	if !ok {
		return 0, fmt.Errorf("%w: bin_type %q", ErrUnknownClassification, string(b))
	}
	return c, nil
}

// BinTypes lists every known tag ordered by code.
func BinTypes() []BinType {
	out := make([]BinType, len(binTypeCodes))
	for b, c := range binTypeCodes {
		out[c] = b
	}
	return out
}
