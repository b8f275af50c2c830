// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package contact

import (
	"net/http"

	"github.com/joeblew999/plat-contact/internal/errorx"
	"github.com/joeblew999/plat-contact/internal/logic/contact"
	"github.com/joeblew999/plat-contact/internal/svc"
	"github.com/joeblew999/plat-contact/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func ContactHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ContactRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errorx.ErrBadRequest(errorx.MsgInvalidBody))
			return
		}

		l := contact.NewContactLogic(r.Context(), svcCtx)
		resp, err := l.Contact(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
