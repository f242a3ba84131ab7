package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoClientOptions(t *testing.T) {
	opts := mongoClientOptions(MongoConfig{
		URI:            "mongodb://db.internal:27017",
		Username:       "crew",
		Password:       "secret",
		AppName:        "crewduty",
		ConnectTimeout: 3 * time.Second,
	})

	assert.Equal(t, []string{"db.internal:27017"}, opts.Hosts)
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "crew", opts.Auth.Username)
	assert.Equal(t, "secret", opts.Auth.Password)
	require.NotNil(t, opts.AppName)
	assert.Equal(t, "crewduty", *opts.AppName)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
}

func TestMongoClientOptionsDefaults(t *testing.T) {
	// a user without a password is ignored
	opts := mongoClientOptions(MongoConfig{URI: "mongodb://localhost:27017", Username: "crew"})

	assert.Nil(t, opts.Auth)
	assert.Nil(t, opts.AppName)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, defaultConnectTimeout, *opts.ConnectTimeout)
}
