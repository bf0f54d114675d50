package common

import (
	"context"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/k6ext"
)

// Credentials holds HTTP basic authentication credentials.
type Credentials struct {
	Username string `js:"username"`
	Password string `js:"password"`
}

// NewCredentials returns a new, empty Credentials.
func NewCredentials() *Credentials {
	return &Credentials{}
}

// Parse reads username/password from credentials if it exists.
func (c *Credentials) Parse(ctx context.Context, credentials goja.Value) error {
	if !k6ext.ValueExists(credentials) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := credentials.ToObject(rt)
	for _, k := range obj.Keys() {
		switch k {
		case "username":
			c.Username = obj.Get(k).String()
		case "password":
			c.Password = obj.Get(k).String()
		}
	}
	return nil
}
