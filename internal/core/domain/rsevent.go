package domain

type RsEvent struct {
	ID        int64  `json:"id"`
	EventName string `json:"eventName"`
	Keyword   string `json:"keyword"`
	UserID    int64  `json:"userId"`
}

type CreateRsEventRequest struct {
	EventName string `json:"eventName" binding:"required"`
	Keyword   string `json:"keyword" binding:"required"`
	UserID    int64  `json:"userId" binding:"required"`
}

// UpdateRsEventRequest carries a partial event. EventName and Keyword are
// pointers so an absent field is distinguishable from an empty one and leaves
// the stored value untouched. ID must match the resource id of the request;
// UserID must match the stored event's owner.
type UpdateRsEventRequest struct {
	ID        *int64  `json:"id"`
	EventName *string `json:"eventName"`
	Keyword   *string `json:"keyword"`
	UserID    *int64  `json:"userId" binding:"required"`
}
