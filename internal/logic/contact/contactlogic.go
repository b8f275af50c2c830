// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package contact

import (
	"context"

	"github.com/joeblew999/plat-contact/internal/errorx"
	"github.com/joeblew999/plat-contact/internal/svc"
	"github.com/joeblew999/plat-contact/internal/types"
	"github.com/joeblew999/plat-contact/pkg/contact"

	"github.com/zeromicro/go-zero/core/logx"
)

type ContactLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewContactLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ContactLogic {
	return &ContactLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ContactLogic) Contact(req *types.ContactRequest) (resp *types.ContactResponse, err error) {
	receipt, err := l.svcCtx.Relay.Submit(l.ctx, contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return nil, errorx.FromSubmit(err)
	}

	return &types.ContactResponse{
		Success:   true,
		MessageId: receipt.MessageID,
	}, nil
}
