// hanzictl 是数据库维护工具：迁移、预置数据、导入和导出。
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCommand(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
