package grpc

// proto.go defines the gRPC server interface derived from
// terralend/verification/v1/verification.proto. This file serves as a
// stand-in for buf-generated code. Once `buf generate` is run, replace this
// file with the import from github.com/consolevik/TerraLend/api/gen/go/terralend/verification/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---------------------------------------------------------------------------
// Messages (mirrors terralend.verification.v1)
// ---------------------------------------------------------------------------

// GreenLoan is the wire representation of a green loan.
type GreenLoan struct {
	Id                  string   `json:"id"`
	TenantId            string   `json:"tenant_id"`
	BorrowerId          string   `json:"borrower_id"`
	BusinessName        string   `json:"business_name"`
	Description         string   `json:"description"`
	GreenObjective      string   `json:"green_objective"`
	LoanAmount          string   `json:"loan_amount"`
	AnnualTurnover      string   `json:"annual_turnover"`
	YearsInBusiness     int32    `json:"years_in_business"`
	EstimatedSavings    string   `json:"estimated_savings"`
	ProjectLocation     string   `json:"project_location"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	Status              string   `json:"status"`
	GreenScore          int32    `json:"green_score"`
	SustainabilityClass string   `json:"sustainability_class,omitempty"`
	RejectionReason     string   `json:"rejection_reason,omitempty"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// Claim is the wire representation of an extracted claim.
type Claim struct {
	ProjectType               string   `json:"project_type"`
	CapacityKw                *float64 `json:"capacity_kw,omitempty"`
	Vendor                    string   `json:"vendor,omitempty"`
	Certifications            []string `json:"certifications,omitempty"`
	Co2SavedTonnesPerYear     *float64 `json:"co2_saved_tonnes_per_year,omitempty"`
	EnergyGeneratedKwhPerYear *float64 `json:"energy_generated_kwh_per_year,omitempty"`
}

// ConfidenceSignal itemises one confidence deduction.
type ConfidenceSignal struct {
	Field   string  `json:"field"`
	Message string  `json:"message"`
	Penalty float64 `json:"penalty"`
}

// ReasonEntry explains one green score factor.
type ReasonEntry struct {
	Factor      string `json:"factor"`
	Explanation string `json:"explanation"`
}

// CrossCheck is one greenwashing cross-verification step.
type CrossCheck struct {
	Source     string  `json:"source"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Detail     string  `json:"detail,omitempty"`
}

// Greenwashing is the outcome of the cross-verification pass.
type Greenwashing struct {
	Passed          bool          `json:"passed"`
	ConfidenceScore float64       `json:"confidence_score"`
	Checks          []*CrossCheck `json:"checks"`
	Flags           []string      `json:"flags,omitempty"`
}

// ClimateRisk is one regional climate risk.
type ClimateRisk struct {
	Type           string `json:"type"`
	Level          string `json:"level"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ClimateAssessment is the aggregated climate risk result.
type ClimateAssessment struct {
	Level string         `json:"level"`
	Risks []*ClimateRisk `json:"risks,omitempty"`
	Notes string         `json:"notes,omitempty"`
}

// Verification is the wire representation of a verification record.
type Verification struct {
	LoanId              string              `json:"loan_id"`
	TenantId            string              `json:"tenant_id"`
	FinalStatus         string              `json:"final_status"`
	RejectionReason     string              `json:"rejection_reason,omitempty"`
	GreenScore          int32               `json:"green_score"`
	SustainabilityClass string              `json:"sustainability_class"`
	Methodology         string              `json:"methodology"`
	Reasoning           []*ReasonEntry      `json:"reasoning"`
	Claim               *Claim              `json:"claim"`
	Confidence          float64             `json:"confidence"`
	Greenwashing        *Greenwashing       `json:"greenwashing"`
	Climate             *ClimateAssessment  `json:"climate"`
	VerifiedAt          string              `json:"verified_at"`
}

type SubmitLoanRequest struct {
	TenantId         string `json:"tenant_id"`
	BorrowerId       string `json:"borrower_id"`
	BusinessName     string `json:"business_name"`
	Description      string `json:"description"`
	GreenObjective   string `json:"green_objective"`
	LoanAmount       string `json:"loan_amount"`
	AnnualTurnover   string `json:"annual_turnover"`
	YearsInBusiness  int32  `json:"years_in_business"`
	EstimatedSavings string `json:"estimated_savings"`
	ProjectLocation  string `json:"project_location"`
}

type SubmitLoanResponse struct {
	Loan *GreenLoan `json:"loan"`
}

type VerifyLoanRequest struct {
	TenantId string `json:"tenant_id"`
	LoanId   string `json:"loan_id"`
}

type VerifyLoanResponse struct {
	Verification *Verification `json:"verification"`
}

type GetLoanRequest struct {
	TenantId string `json:"tenant_id"`
	LoanId   string `json:"loan_id"`
}

type GetLoanResponse struct {
	Loan *GreenLoan `json:"loan"`
}

type GetVerificationRequest struct {
	TenantId string `json:"tenant_id"`
	LoanId   string `json:"loan_id"`
}

type GetVerificationResponse struct {
	Verification *Verification `json:"verification"`
}

type AnalyzeDescriptionRequest struct {
	Description string `json:"description"`
}

type AnalyzeDescriptionResponse struct {
	Claim      *Claim              `json:"claim"`
	Confidence float64             `json:"confidence"`
	Signals    []*ConfidenceSignal `json:"signals,omitempty"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// VerificationServiceServer is the server API for VerificationService.
// It mirrors the proto-generated interface from terralend.verification.v1.VerificationService.
type VerificationServiceServer interface {
	SubmitLoan(context.Context, *SubmitLoanRequest) (*SubmitLoanResponse, error)
	VerifyLoan(context.Context, *VerifyLoanRequest) (*VerifyLoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	GetVerification(context.Context, *GetVerificationRequest) (*GetVerificationResponse, error)
	AnalyzeDescription(context.Context, *AnalyzeDescriptionRequest) (*AnalyzeDescriptionResponse, error)
	mustEmbedUnimplementedVerificationServiceServer()
}

// UnimplementedVerificationServiceServer provides forward-compatible default implementations.
type UnimplementedVerificationServiceServer struct{}

func (UnimplementedVerificationServiceServer) SubmitLoan(context.Context, *SubmitLoanRequest) (*SubmitLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitLoan not implemented")
}
func (UnimplementedVerificationServiceServer) VerifyLoan(context.Context, *VerifyLoanRequest) (*VerifyLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyLoan not implemented")
}
func (UnimplementedVerificationServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedVerificationServiceServer) GetVerification(context.Context, *GetVerificationRequest) (*GetVerificationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVerification not implemented")
}
func (UnimplementedVerificationServiceServer) AnalyzeDescription(context.Context, *AnalyzeDescriptionRequest) (*AnalyzeDescriptionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeDescription not implemented")
}
func (UnimplementedVerificationServiceServer) mustEmbedUnimplementedVerificationServiceServer() {}

// RegisterVerificationServiceServer registers the VerificationServiceServer with the gRPC server.
func RegisterVerificationServiceServer(s *grpclib.Server, srv VerificationServiceServer) {
	s.RegisterService(&_VerificationService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _VerificationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "terralend.verification.v1.VerificationService",
	HandlerType: (*VerificationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SubmitLoan", Handler: _VerificationService_SubmitLoan_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "VerifyLoan", Handler: _VerificationService_VerifyLoan_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _VerificationService_GetLoan_Handler},                       //nolint:revive // gRPC handler registration
		{MethodName: "GetVerification", Handler: _VerificationService_GetVerification_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "AnalyzeDescription", Handler: _VerificationService_AnalyzeDescription_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _VerificationService_SubmitLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VerificationServiceServer).SubmitLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terralend.verification.v1.VerificationService/SubmitLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VerificationServiceServer).SubmitLoan(ctx, req.(*SubmitLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _VerificationService_VerifyLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(VerifyLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VerificationServiceServer).VerifyLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terralend.verification.v1.VerificationService/VerifyLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VerificationServiceServer).VerifyLoan(ctx, req.(*VerifyLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _VerificationService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VerificationServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terralend.verification.v1.VerificationService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VerificationServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _VerificationService_GetVerification_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetVerificationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VerificationServiceServer).GetVerification(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terralend.verification.v1.VerificationService/GetVerification",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VerificationServiceServer).GetVerification(ctx, req.(*GetVerificationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _VerificationService_AnalyzeDescription_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeDescriptionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VerificationServiceServer).AnalyzeDescription(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/terralend.verification.v1.VerificationService/AnalyzeDescription",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VerificationServiceServer).AnalyzeDescription(ctx, req.(*AnalyzeDescriptionRequest))
	}
	return interceptor(ctx, in, info, handler)
}
