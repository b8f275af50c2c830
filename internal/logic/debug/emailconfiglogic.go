// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package debug

import (
	"context"
	"net"

	"github.com/joeblew999/plat-contact/internal/errorx"
	"github.com/joeblew999/plat-contact/internal/svc"
	"github.com/joeblew999/plat-contact/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type EmailConfigLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewEmailConfigLogic(ctx context.Context, svcCtx *svc.ServiceContext) *EmailConfigLogic {
	return &EmailConfigLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// EmailConfig reports the transport configuration without credentials.
// remoteAddr is the socket peer address; forwarded headers are not trusted.
func (l *EmailConfigLogic) EmailConfig(remoteAddr string) (resp *types.EmailConfigResponse, err error) {
	c := l.svcCtx.Config
	if c.Production() && !isLoopback(remoteAddr) {
		l.Infow("debug email-config refused", logx.Field("remote", remoteAddr))
		return nil, errorx.ErrForbidden(errorx.MsgNotAllowed)
	}

	return &types.EmailConfigResponse{
		EmailConfigured: l.svcCtx.Relay.EmailConfigured(),
		SmtpHost:        c.Email.Host,
		SmtpPort:        c.Email.Port,
		SmtpSecure:      c.Email.Secure,
		EmailReceiver:   c.Email.Recipient(),
		EmailFromName:   c.Email.FromName,
		Env:             c.Env,
		HasTransporter:  l.svcCtx.Relay.Ready(),
	}, nil
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
