// Package selectors holds the locator sets for the target application's UI.
// Pure data: resource-ids and xpath queries captured from UI dumps, with
// alternate queries for retries where the layout is known to vary.
package selectors

import "github.com/masterFuf/taktik-bot-sub000/internal/core"

const appID = "com.zhiliaoapp.musically"

func rid(id string) string {
	return `//*[@resource-id="` + appID + `:id/` + id + `"]`
}

// Video player.
var (
	LikeButton = core.LocatorSet{
		Name: "like_button",
		Queries: []string{
			rid("f57") + `[contains(@content-desc, "Like video")]`,
			`//*[contains(@content-desc, "Like video")]`,
		},
	}
	LikeButtonLiked = core.LocatorSet{
		Name: "like_button_liked",
		Queries: []string{
			`//*[contains(@content-desc, "Video liked")]`,
		},
	}
	FollowButton = core.LocatorSet{
		Name: "video_follow_button",
		Queries: []string{
			rid("hi1"),
			`//*[contains(@content-desc, "Follow") and not(contains(@content-desc, "Following"))]`,
		},
	}
	FavoriteButton = core.LocatorSet{
		Name: "favorite_button",
		Queries: []string{
			rid("guh"),
			`//*[contains(@content-desc, "Favourites")]`,
		},
		Alt: []string{
			`//*[contains(@content-desc, "Favorites")]`,
		},
	}
	ShareButton = core.LocatorSet{
		Name:    "share_button",
		Queries: []string{rid("f57") + `[contains(@content-desc, "Share video")]`},
	}
	VideoAuthor = core.LocatorSet{
		Name:    "video_author",
		Queries: []string{rid("title")},
	}
	VideoDescription = core.LocatorSet{
		Name:    "video_description",
		Queries: []string{rid("desc")},
	}
	VideoLikeCount = core.LocatorSet{
		Name:    "video_like_count",
		Queries: []string{rid("f4z")},
	}
	AdLabel = core.LocatorSet{
		Name:    "ad_label",
		Queries: []string{rid("ru3"), `//*[@text="Sponsored"]`},
	}
	VideoPressLayer = core.LocatorSet{
		Name:    "video_press_layer",
		Queries: []string{`//*[@resource-id="` + appID + `:id/long_press_layout"][@content-desc="Video"]`},
	}
)

// Profile page.
var (
	ProfileUsername = core.LocatorSet{
		Name:    "profile_username",
		Queries: []string{rid("qh5")},
	}
	ProfileDisplayName = core.LocatorSet{
		Name:    "profile_display_name",
		Queries: []string{rid("qf8")},
	}
	ProfileStatValue = core.LocatorSet{
		Name:    "profile_stat_value",
		Queries: []string{rid("qfw")},
	}
	ProfileStatLabel = core.LocatorSet{
		Name:    "profile_stat_label",
		Queries: []string{rid("qfv")},
	}
	ProfileBio = core.LocatorSet{
		Name:    "profile_bio",
		Queries: []string{rid("qgh")},
	}
	ProfileFollowButton = core.LocatorSet{
		Name:    "profile_follow_button",
		Queries: []string{rid("eme") + `[@text="Follow"]`},
	}
	ProfileGridItem = core.LocatorSet{
		Name: "profile_grid_item",
		Queries: []string{
			`//*[@resource-id="` + appID + `:id/cover"]`,
		},
		Alt: []string{
			`//androidx.recyclerview.widget.RecyclerView//android.widget.FrameLayout[@clickable="true"]`,
		},
	}
	ProfileNoVideos = core.LocatorSet{
		Name:    "profile_no_videos",
		Queries: []string{`//*[@text="No videos yet"]`},
	}
	FollowersCounter = core.LocatorSet{
		Name: "followers_counter",
		Queries: []string{
			`//android.view.ViewGroup[@clickable="true"][.//android.widget.TextView[@text="Followers"]]`,
		},
		Alt: []string{
			`//*[.//android.widget.TextView[@text="Followers"]][@clickable="true"]`,
		},
	}
	FollowingCounter = core.LocatorSet{
		Name: "following_counter",
		Queries: []string{
			`//android.widget.LinearLayout[@clickable="true"][.//android.widget.TextView[@text="Following"]]`,
		},
		Alt: []string{
			`//*[.//android.widget.TextView[@text="Following"]][@clickable="true"]`,
		},
	}
)

// Story view. Ambiguous with Profile (both expose a Close affordance), so
// detection requires two of these to match.
var (
	StoryTimestamp = core.LocatorSet{
		Name:    "story_timestamp",
		Queries: []string{rid("st3")},
	}
	StoryClose = core.LocatorSet{
		Name:    "story_close",
		Queries: []string{`//*[@content-desc="Close"]`},
	}
	StoryFollow = core.LocatorSet{
		Name:    "story_follow",
		Queries: []string{rid("sfo") + `[@text="Follow"]`},
	}
	StoryMessageInput = core.LocatorSet{
		Name:    "story_message_input",
		Queries: []string{`//*[@text="Send a message..."]`},
	}
)

// Followers list.
var (
	FollowersList = core.LocatorSet{
		Name:    "followers_list",
		Queries: []string{rid("s6p")},
	}
	FollowersTabSelected = core.LocatorSet{
		Name:    "followers_tab_selected",
		Queries: []string{`//android.widget.TextView[contains(@text, "Followers")][@selected="true"]`},
	}
	FollowerAnyButton = core.LocatorSet{
		Name:    "follower_any_button",
		Queries: []string{rid("rdh")},
	}
	FollowerUsername = core.LocatorSet{
		Name:    "follower_username",
		Queries: []string{rid("ygv")},
	}
	FollowingListOpener = core.LocatorSet{
		Name: "following_list_opener",
		Queries: []string{
			`//android.widget.LinearLayout[@clickable="true"][.//android.widget.TextView[@text="Following"]]`,
		},
	}
	FollowingOrFriendsButton = core.LocatorSet{
		Name:    "following_or_friends_button",
		Queries: []string{rid("rdh") + `[@text="Following" or @text="Friends"]`},
	}
	UnfollowConfirm = core.LocatorSet{
		Name:    "unfollow_confirm",
		Queries: []string{`//*[@text="Unfollow"]`},
	}
)

// Search.
var (
	SearchEntry = core.LocatorSet{
		Name: "search_entry",
		Queries: []string{
			`//*[@content-desc="Search"]`,
			rid("i0a"),
		},
	}
	SearchInput = core.LocatorSet{
		Name:    "search_input",
		Queries: []string{rid("kcu"), `//android.widget.EditText`},
	}
	SearchSubmit = core.LocatorSet{
		Name:    "search_submit",
		Queries: []string{rid("kcy"), `//*[@text="Search"][@clickable="true"]`},
	}
	SearchResultsPanel = core.LocatorSet{
		Name:    "search_results_panel",
		Queries: []string{rid("lnp")},
	}
	UsersTab = core.LocatorSet{
		Name: "users_tab",
		Queries: []string{
			`//*[@content-desc="Users"]`,
			`//android.widget.TextView[@text="Users"]`,
		},
	}
	FirstUserResult = core.LocatorSet{
		Name: "first_user_result",
		Queries: []string{
			`(//androidx.recyclerview.widget.RecyclerView[@resource-id="` + appID + `:id/lnp"]//android.widget.Button[@clickable="true"])[1]`,
		},
		Alt: []string{
			`(//android.widget.Button[@clickable="true"][.//android.widget.TextView[@resource-id="` + appID + `:id/ye2"]])[1]`,
		},
	}
)

// Navigation tabs.
var (
	HomeTab = core.LocatorSet{
		Name: "home_tab",
		Queries: []string{
			rid("mkq"),
			`//android.widget.FrameLayout[@content-desc="Home"]`,
		},
	}
	HomeTabSelected = core.LocatorSet{
		Name: "home_tab_selected",
		Queries: []string{
			rid("mkq") + `[@selected="true"]`,
			`//android.widget.FrameLayout[@content-desc="Home"][@selected="true"]`,
		},
	}
	ProfileTab = core.LocatorSet{
		Name: "profile_tab",
		Queries: []string{
			rid("mks"),
			`//android.widget.FrameLayout[@content-desc="Profile"]`,
		},
	}
	ForYouTab = core.LocatorSet{
		Name:    "for_you_tab",
		Queries: []string{`//*[@text="For You"]`},
	}
	BackButton = core.LocatorSet{
		Name:    "back_button",
		Queries: []string{`//*[@content-desc="Back"]`},
	}
)

// Inbox.
var (
	InboxTitle = core.LocatorSet{
		Name:    "inbox_title",
		Queries: []string{`//*[@text="Inbox"]`},
	}
	InboxTabSelected = core.LocatorSet{
		Name: "inbox_tab_selected",
		Queries: []string{
			rid("mkr") + `[@selected="true"]`,
			`//android.widget.FrameLayout[@content-desc="Inbox"][@selected="true"]`,
		},
	}
)

// Popups and interruptions.
var (
	SystemInputMethodPopup = core.LocatorSet{
		Name: "system_input_method_popup",
		Queries: []string{
			`//*[@text="Select input method"]`,
			`//*[@text="Choose input method"]`,
		},
	}
	NotificationBanner = core.LocatorSet{
		Name: "notification_banner",
		Queries: []string{
			`//*[contains(@text, "sent you new messages")]`,
			`//*[contains(@text, "sent you a message")]`,
		},
	}
	LinkEmailPopup = core.LocatorSet{
		Name:    "link_email_popup",
		Queries: []string{`//*[@text="Link email"]`},
	}
	FollowFriendsPopup = core.LocatorSet{
		Name: "follow_friends_popup",
		Queries: []string{
			`//*[@text="Follow your friends"]`,
			rid("dga"),
		},
	}
	CollectionsPopup = core.LocatorSet{
		Name:    "collections_popup",
		Queries: []string{`//*[@text="Create shared collections"]`},
	}
	PopupNotNow = core.LocatorSet{
		Name:    "popup_not_now",
		Queries: []string{`//*[@text="Not now"]`},
		Alt:     []string{`//*[@content-desc="Close"]`},
	}
	PopupClose = core.LocatorSet{
		Name:    "popup_close",
		Queries: []string{`//*[@content-desc="Close"]`},
		Alt:     []string{`//*[@text="Not now"]`},
	}
	SuggestionPage = core.LocatorSet{
		Name: "suggestion_page",
		Queries: []string{
			`//*[@text="Follow back"]`,
			`//*[@text="Not interested"]`,
		},
	}
	SuggestionDismiss = core.LocatorSet{
		Name:    "suggestion_dismiss",
		Queries: []string{`//*[@text="Not interested"]`},
	}
	CommentsPanel = core.LocatorSet{
		Name:    "comments_panel",
		Queries: []string{`//*[contains(@text, "comments")][@resource-id="` + appID + `:id/title"]`},
	}
	CommentsClose = core.LocatorSet{
		Name:    "comments_close",
		Queries: []string{`//*[@content-desc="Close"]`},
	}
)

// AppID returns the package name of the automated application.
func AppID() string { return appID }
