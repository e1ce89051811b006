package session

import "path"

// userPrefixLen bounds the user path segment to the first 24 characters of
// the user identifier. This trades a theoretical prefix-collision risk for
// bounded path length; widening it would orphan existing user directories,
// so the truncation is part of the on-disk layout contract.
const userPrefixLen = 24

func userSegment(userID string) string {
	if len(userID) > userPrefixLen {
		userID = userID[:userPrefixLen]
	}
	return Sanitize(userID)
}

// appDir is the namespace root for one (user, application) pair:
// users/{user-prefix}/{app}.
func appDir(user, app string) string {
	return path.Join("users", userSegment(user), Sanitize(app))
}

func indexKey(user, app string) string {
	return appDir(user, app) + "/sessions_index.json"
}

func sessionDir(user, app, id string) string {
	return appDir(user, app) + "/sessions/" + Sanitize(id)
}

func stateKey(user, app, id string) string {
	return sessionDir(user, app, id) + "/state.json"
}

func filesDir(user, app, id string) string {
	return sessionDir(user, app, id) + "/files"
}
