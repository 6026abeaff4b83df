package types

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
)

// MsgServer defines the message server interface
type MsgServer interface {
	ExecuteSwap(context.Context, *MsgExecuteSwap) (*MsgExecuteSwapResponse, error)
	ApplyCuts(context.Context, *MsgApplyCuts) (*MsgApplyCutsResponse, error)
	SetFeeLedger(context.Context, *MsgSetFeeLedger) (*MsgSetFeeLedgerResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
	SweepResidual(context.Context, *MsgSweepResidual) (*MsgSweepResidualResponse, error)
}

// Response types

// MsgExecuteSwapResponse defines the response for ExecuteSwap
type MsgExecuteSwapResponse struct {
	ActualOutput math.Int `json:"actual_output"`
	Generation   uint32   `json:"generation"`
}

// MsgApplyCutsResponse defines the response for ApplyCuts
type MsgApplyCutsResponse struct{}

// MsgSetFeeLedgerResponse defines the response for SetFeeLedger
type MsgSetFeeLedgerResponse struct{}

// MsgUpdateParamsResponse defines the response for UpdateParams
type MsgUpdateParamsResponse struct{}

// MsgSweepResidualResponse defines the response for SweepResidual
type MsgSweepResidualResponse struct {
	Amount math.Int `json:"amount"`
}

// proto.Message stubs so the responses travel through the msg service router.

func (m *MsgExecuteSwapResponse) Reset() { *m = MsgExecuteSwapResponse{} }
func (m *MsgExecuteSwapResponse) String() string {
	return fmt.Sprintf("MsgExecuteSwapResponse{out=%s gen=%d}", m.ActualOutput, m.Generation)
}
func (*MsgExecuteSwapResponse) ProtoMessage() {}

func (m *MsgApplyCutsResponse) Reset()         { *m = MsgApplyCutsResponse{} }
func (m *MsgApplyCutsResponse) String() string { return "MsgApplyCutsResponse{}" }
func (*MsgApplyCutsResponse) ProtoMessage()    {}

func (m *MsgSetFeeLedgerResponse) Reset()         { *m = MsgSetFeeLedgerResponse{} }
func (m *MsgSetFeeLedgerResponse) String() string { return "MsgSetFeeLedgerResponse{}" }
func (*MsgSetFeeLedgerResponse) ProtoMessage()    {}

func (m *MsgUpdateParamsResponse) Reset()         { *m = MsgUpdateParamsResponse{} }
func (m *MsgUpdateParamsResponse) String() string { return "MsgUpdateParamsResponse{}" }
func (*MsgUpdateParamsResponse) ProtoMessage()    {}

func (m *MsgSweepResidualResponse) Reset() { *m = MsgSweepResidualResponse{} }
func (m *MsgSweepResidualResponse) String() string {
	return fmt.Sprintf("MsgSweepResidualResponse{amount=%s}", m.Amount)
}
func (*MsgSweepResidualResponse) ProtoMessage() {}
