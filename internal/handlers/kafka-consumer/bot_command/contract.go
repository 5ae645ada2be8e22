package bot_command

import (
	"easygo/internal/entities"
	"easygo/internal/pkg/factory/command_handle"
	"easygo/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type HandlerFactory interface {
	GetHandler(commandType entities.BotCommandType) (command_handle.ExecuteFn, error)
}
