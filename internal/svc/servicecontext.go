// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"github.com/joeblew999/plat-contact/internal/config"
	"github.com/joeblew999/plat-contact/pkg/relay"
)

type ServiceContext struct {
	Config config.Config
	Relay  *relay.Relay
}

func NewServiceContext(c config.Config, r *relay.Relay) *ServiceContext {
	return &ServiceContext{
		Config: c,
		Relay:  r,
	}
}
