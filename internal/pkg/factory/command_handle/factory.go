package command_handle

import (
	"context"
	"errors"
	"fmt"

	"easygo/internal/entities"
)

type ExecuteFn func(ctx context.Context, cmd entities.BotCommand) error

var ErrUndefinedCommand = errors.New("undefined bot command")

type DispatchService interface {
	ClaimOrder(ctx context.Context, courierID int64, orderID string) (*entities.Order, error)
	FlagBadAddress(ctx context.Context, courierID int64, orderID string) (*entities.Order, error)
	MarkDeparted(ctx context.Context, courierID int64, orderID string) (*entities.Order, error)
	MarkPickedUp(ctx context.Context, courierID int64, orderID string) (*entities.Order, error)
	MarkDone(ctx context.Context, courierID int64, orderID string) (*entities.Order, error)
	SubmitProof(ctx context.Context, courierID int64, orderID string, proofRef string) (*entities.Order, error)
	CancelOrder(ctx context.Context, clientID int64, orderID string) (*entities.Order, error)
	DeleteProblemOrder(ctx context.Context, clientID int64, orderID string) (*entities.Order, error)
}

type CourierService interface {
	Apply(ctx context.Context, courierID int64, name, phone, transport string) (*entities.CourierProfile, error)
	Approve(ctx context.Context, operatorID, courierID int64) (*entities.CourierProfile, error)
	Reject(ctx context.Context, operatorID, courierID int64) (*entities.CourierProfile, error)
}

type CommandHandlerFactory struct {
	dispatchService DispatchService
	courierService  CourierService
}

func NewCommandHandlerFactory(dispatchService DispatchService, courierService CourierService) *CommandHandlerFactory {
	return &CommandHandlerFactory{
		dispatchService: dispatchService,
		courierService:  courierService,
	}
}

func (f *CommandHandlerFactory) GetHandler(commandType entities.BotCommandType) (ExecuteFn, error) {
	switch commandType {
	case entities.CommandTake:
		return f.takeHandler, nil
	case entities.CommandBadAddress:
		return f.badAddressHandler, nil
	case entities.CommandDepart:
		return f.departHandler, nil
	case entities.CommandPickup:
		return f.pickupHandler, nil
	case entities.CommandDone:
		return f.doneHandler, nil
	case entities.CommandProof:
		return f.proofHandler, nil
	case entities.CommandCancel:
		return f.cancelHandler, nil
	case entities.CommandDeleteProblem:
		return f.deleteProblemHandler, nil
	case entities.CommandApply:
		return f.applyHandler, nil
	case entities.CommandApprove:
		return f.approveHandler, nil
	case entities.CommandReject:
		return f.rejectHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUndefinedCommand, commandType)
	}
}

func (f *CommandHandlerFactory) takeHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.ClaimOrder(ctx, cmd.ActorID, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("claim order %s for courier %d: %w", cmd.OrderID, cmd.ActorID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) badAddressHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.FlagBadAddress(ctx, cmd.ActorID, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("flag bad address on order %s: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) departHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.MarkDeparted(ctx, cmd.ActorID, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("mark order %s departed: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) pickupHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.MarkPickedUp(ctx, cmd.ActorID, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("mark order %s picked up: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) doneHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.MarkDone(ctx, cmd.ActorID, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("mark order %s done: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) proofHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.SubmitProof(ctx, cmd.ActorID, cmd.OrderID, cmd.ProofRef)
	if err != nil {
		return fmt.Errorf("submit proof for order %s: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) cancelHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.CancelOrder(ctx, cmd.ActorID, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("cancel order %s: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) deleteProblemHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.dispatchService.DeleteProblemOrder(ctx, cmd.ActorID, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("delete problem order %s: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) applyHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.courierService.Apply(ctx, cmd.ActorID, cmd.Name, cmd.Phone, cmd.Transport)
	if err != nil {
		return fmt.Errorf("apply courier %d: %w", cmd.ActorID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) approveHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.courierService.Approve(ctx, cmd.ActorID, cmd.TargetID)
	if err != nil {
		return fmt.Errorf("approve courier %d: %w", cmd.TargetID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) rejectHandler(ctx context.Context, cmd entities.BotCommand) error {
	_, err := f.courierService.Reject(ctx, cmd.ActorID, cmd.TargetID)
	if err != nil {
		return fmt.Errorf("reject courier %d: %w", cmd.TargetID, err)
	}
	return nil
}
