package relation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/dgo/v200"
	"github.com/dgraph-io/dgo/v200/protos/api"
	"google.golang.org/grpc"
)

// Dg is dGraph client.
var Dg *dgo.Dgraph

// Open connecting to dGraph.
func Open(RPCAddr string) error {
	conn, err := grpc.Dial(RPCAddr, grpc.WithInsecure())
	if err != nil {
		return err
	}

	dc := api.NewDgraphClient(conn)
	Dg = dgo.NewDgraphClient(dc)
	return nil
}

// Enabled 未配置 dgraph 时镜像功能关闭
func Enabled() bool {
	return Dg != nil
}

/* SyncSponsorEdges 全量重建推荐关系镜像
引擎内存状态是唯一数据源，这里只写不读，供离线分析使用。
parent -> children 以 cons 边表示，name 为用户ID。
*/
func SyncSponsorEdges(edges map[int64][]int64) error {
	if !Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err := Dg.Alter(ctx, &api.Operation{DropAll: true})
	if err != nil {
		return err
	}
	err = Dg.Alter(ctx, &api.Operation{Schema: `name: string @index(exact) .`})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for parent, children := range edges {
		fmt.Fprintf(&buf, "_:u%d <name> %q .\n", parent, fmt.Sprintf("%d", parent))
		for _, child := range children {
			fmt.Fprintf(&buf, "_:u%d <name> %q .\n", child, fmt.Sprintf("%d", child))
			fmt.Fprintf(&buf, "_:u%d <cons> _:u%d .\n", parent, child)
		}
	}
	if buf.Len() == 0 {
		return nil
	}

	_, err = Dg.NewTxn().Mutate(ctx, &api.Mutation{
		SetNquads: buf.Bytes(),
		CommitNow: true,
	})
	return err
}
