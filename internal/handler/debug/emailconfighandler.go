// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package debug

import (
	"net/http"

	"github.com/joeblew999/plat-contact/internal/logic/debug"
	"github.com/joeblew999/plat-contact/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func EmailConfigHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := debug.NewEmailConfigLogic(r.Context(), svcCtx)
		resp, err := l.EmailConfig(r.RemoteAddr)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
