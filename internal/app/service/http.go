package service

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"server-invest-app/config"
	"server-invest-app/internal/app/chain"
	"server-invest-app/internal/pkg/middleware"
)

var srv *http.Server

func RunHttp() {
	r := gin.Default()
	pprof.Register(r)

	chainGroup := r.Group("/chain")
	chainGroup.GET("/user/sponsors/count", chain.GetDirectSponsorsCount)
	chainGroup.GET("/user/hierarchy", chain.GetUserTotalHierarchy)
	chainGroup.GET("/user/address", chain.GetAddressByUserID)
	chainGroup.GET("/user/id", chain.GetUserIDByAddress)
	chainGroup.GET("/bonus", chain.GetAvailableBonus)
	chainGroup.GET("/roi/current", chain.GetCurrentHourROIPercentage)
	chainGroup.GET("/roi/next", chain.GetNextHourROIPercentage)

	chainMut := chainGroup.Group("")
	chainMut.Use(middleware.ValidateSign)
	chainMut.PUT("/invest", chain.Invest)
	chainMut.POST("/claim/roi", chain.ClaimROI)
	chainMut.POST("/claim/bonus", chain.ClaimBonus)
	chainMut.POST("/claim/principal", chain.ClaimPrincipal)

	treasuryGroup := r.Group("/treasury")
	treasuryGroup.GET("/pool", chain.GetPoolBalance)

	treasuryMut := treasuryGroup.Group("")
	treasuryMut.Use(middleware.ValidateSign)
	treasuryMut.PUT("/deposit", chain.Deposit)
	treasuryMut.POST("/release", chain.ReleaseProfit)
	treasuryMut.POST("/withdraw/all", chain.EmergencyWithdrawAll)
	treasuryMut.POST("/wallet", chain.SetCompanyWallet)

	srv = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
		Handler: r,
	}

	log.Infof("Start to listen %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s\n", err)
	}
}

func GetHttp() *http.Server {
	return srv
}
