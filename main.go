package main

import (
	"dingdong-api/core/logger"
	"dingdong-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
