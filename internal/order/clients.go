package order

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/MikeMC777/ordenes-core/internal/customer"
	customerpb "github.com/MikeMC777/ordenes-core/internal/customerpb"
)

// Ext holds the collaborators that live in other services. It satisfies
// CustomerLookup through the customer directory.
type Ext struct {
	Customers customerpb.CustomerDirectoryClient
	Timeout   time.Duration
	conn      *grpc.ClientConn
}

func NewExt(customerTarget string) (*Ext, error) {
	// Non-blocking gRPC connection
	conn, err := grpc.NewClient(customerTarget, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &Ext{
		Customers: customerpb.NewCustomerDirectoryClient(conn),
		Timeout:   5 * time.Second,
		conn:      conn,
	}, nil
}

func (e *Ext) Close() error {
	if e.conn == nil {
		return nil
	}
	return e.conn.Close()
}

func (e *Ext) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	if id == "" {
		return nil, customer.ErrNotFound
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	out, err := e.Customers.GetCustomer(ctx, wrapperspb.String(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, customer.ErrNotFound
		}
		return nil, err
	}
	return customer.FromStruct(out)
}
