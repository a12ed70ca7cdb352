package slackmsg

// Remote operations wrapped by this package, relative to the base URL.
const (
	EndpointPostMessage            = "message.post"
	EndpointUpdateMessage          = "message.update"
	EndpointDeleteMessage          = "message.delete"
	EndpointPostEphemeral          = "message.post-ephemeral"
	EndpointScheduleMessage        = "message.schedule"
	EndpointListScheduledMessages  = "message.scheduled.list"
	EndpointDeleteScheduledMessage = "message.scheduled.delete"
	EndpointAddReaction            = "reaction.add"
	EndpointRemoveReaction         = "reaction.remove"
	EndpointGetReactions           = "reaction.get"
)
