package service

import (
	"github.com/robfig/cron"

	"server-invest-app/config"
	"server-invest-app/internal/app/chain"
	"server-invest-app/internal/app/relation"
	"server-invest-app/internal/app/warn"
	"server-invest-app/internal/dao"
)

func StatTicker() {
	c := cron.New()
	chainCfg := config.Chain
	_ = c.AddFunc(chainCfg.StatSchedule, snapshotStat)
	_ = c.AddFunc(chainCfg.StatSchedule, syncRelation)
	c.Start()
}

// 平台汇总落库
func snapshotStat() {
	warn.Must("insert stat record", dao.Stat.Create(chain.Eng.Stats()))
}

// 推荐关系镜像重建
func syncRelation() {
	if !relation.Enabled() {
		return
	}
	warn.Must("sync sponsor edges", relation.SyncSponsorEdges(chain.Eng.SponsorEdges()))
}
