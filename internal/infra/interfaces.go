package infra

import "context"

type PincodeClientInterface interface {
	Lookup(ctx context.Context, pincode string) (*PincodeInfo, error)
}

var _ PincodeClientInterface = (*PincodeClient)(nil)
