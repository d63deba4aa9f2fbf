package customer

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStruct encodes c as the message carried by the customer directory RPCs.
func ToStruct(c *Customer) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"email":      c.Email,
		"created_at": c.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func FromStruct(s *structpb.Struct) (*Customer, error) {
	f := s.GetFields()
	c := &Customer{
		ID:    f["id"].GetStringValue(),
		Name:  f["name"].GetStringValue(),
		Email: f["email"].GetStringValue(),
	}
	if c.ID == "" {
		return nil, fmt.Errorf("customer message without id")
	}
	for key, dst := range map[string]*time.Time{"created_at": &c.CreatedAt, "updated_at": &c.UpdatedAt} {
		v := f[key].GetStringValue()
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", key, err)
		}
		*dst = t
	}
	return c, nil
}
