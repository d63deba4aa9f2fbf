package customer

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "github.com/MikeMC777/ordenes-core/internal/customerpb"
)

// Service serves the customer directory over gRPC.
type Service struct {
	pb.UnimplementedCustomerDirectoryServer
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCustomer registers a customer. Emails are unique ignoring case.
func (s *Service) CreateCustomer(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := in.GetFields()
	name := strings.TrimSpace(f["name"].GetStringValue())
	email := strings.TrimSpace(f["email"].GetStringValue())
	if name == "" || email == "" {
		return nil, status.Error(codes.InvalidArgument, "name and email are required")
	}
	if at := strings.IndexByte(email, '@'); at < 1 || at == len(email)-1 {
		return nil, status.Error(codes.InvalidArgument, "email is not valid")
	}

	c := &Customer{Name: name, Email: email}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrAlreadyExist) {
			return nil, status.Error(codes.AlreadyExists, "customer exists (email)")
		}
		return nil, status.Errorf(codes.Internal, "create error: %v", err)
	}
	return encode(c)
}

func (s *Service) GetCustomer(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	c, err := s.repo.GetByID(ctx, in.GetValue())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, status.Error(codes.NotFound, "customer not found")
		}
		return nil, status.Errorf(codes.Internal, "get error: %v", err)
	}
	return encode(c)
}

// ValidateCustomer (existe por ID)
func (s *Service) ValidateCustomer(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	_, err := s.repo.GetByID(ctx, in.GetValue())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return wrapperspb.Bool(false), nil
		}
		return nil, status.Errorf(codes.Internal, "validate error: %v", err)
	}
	return wrapperspb.Bool(true), nil
}

func encode(c *Customer) (*structpb.Struct, error) {
	out, err := ToStruct(c)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode error: %v", err)
	}
	return out, nil
}
