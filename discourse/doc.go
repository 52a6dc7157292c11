/*
Typed bindings for the Discourse forum REST and chat APIs.

A [Client] is created for one forum base URL with one of four constructors, which fix its authentication mode for its lifetime:

	c := discourse.New("https://meta.discourse.org")                        // anonymous
	c := discourse.NewWithAPIKey(url, apiKey, "system")                     // admin API key
	c := discourse.NewWithUserAPIKey(url, userAPIKey)                       // user API key
	c := discourse.NewWithUserAPIKeyAndClientID(url, userAPIKey, clientID) // user API key + client id

Each method performs exactly one HTTP request and returns either a freshly decoded record or an error. Errors are classified by the sibling client package: [client.ErrTransport], [client.ErrMalformedResponse], or [*client.APIError]. Nothing is cached, retried, or paginated automatically; responses which carry paging hints (eg, [TopicList.MoreTopicsURL]) expose them to the caller.

Record types follow the JSON shapes of current Discourse releases. Attributes which some releases or some record kinds omit are pointers, and are nil when absent.
*/
package discourse
