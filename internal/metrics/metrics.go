package metrics

const Namespace = "remindme"
