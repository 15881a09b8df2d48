package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sphereplay/arena/internal/aws/notification"
	"github.com/sphereplay/arena/internal/aws/storage"
)

// joinNotifier pushes an opponent-joined notification to the host's
// registered application endpoint. Hosts without one are skipped.
type joinNotifier struct {
	storageClient      *storage.Client
	notificationClient *notification.Client
}

func (n *joinNotifier) NotifyOpponentJoined(
	ctx context.Context,
	hostId,
	roomId,
	guestName string,
) error {
	endpoint, err := n.storageClient.GetApplicationEndpoint(ctx, hostId)
	if errors.Is(err, storage.ErrApplicationEndpointNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	message, err := json.Marshal(map[string]string{
		"default": guestName + " joined room " + roomId,
	})
	if err != nil {
		return err
	}
	return n.notificationClient.SendPushNotification(ctx, endpoint.EndpointArn, string(message))
}
