package connection

import "net/url"

const (
	URLQueryGameUuidKeyword   string = "gameUuid"
	URLQueryWatchTokenKeyword string = "watchToken"
)

// ReqWatch is read from the websocket upgrade URL. WatchToken is
// optional; without it the watcher is a spectator.
type ReqWatch struct {
	GameUuid   string `json:"game_uuid"`
	WatchToken string `json:"-"`
}

func NewReqWatch(query url.Values) ReqWatch {
	return ReqWatch{
		GameUuid:   query.Get(URLQueryGameUuidKeyword),
		WatchToken: query.Get(URLQueryWatchTokenKeyword),
	}
}
